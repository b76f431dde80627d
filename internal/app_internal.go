package internal

import (
	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

// AppInternal holds every controller exposed on the command line.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the AppInternal from the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the controllers in registration order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
