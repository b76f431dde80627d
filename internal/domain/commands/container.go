package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewAnalyzeCommand); err != nil {
		return err
	}
	if err := container.Provide(NewBatchCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *AnalyzeCommand) Analyze {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *BatchCommand) Batch {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
