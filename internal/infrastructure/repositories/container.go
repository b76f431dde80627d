package repositories

import (
	geminiRepo "github.com/rios0rios0/repoanalyzer/internal/infrastructure/repositories/gemini"
	ghRepo "github.com/rios0rios0/repoanalyzer/internal/infrastructure/repositories/github"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register content registry with all repository host factories
	if err := container.Provide(func() *ContentRegistry {
		reg := NewContentRegistry()
		reg.Register("github", ghRepo.NewContentRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register narrative registry with all text-generation factories
	if err := container.Provide(func() *NarrativeRegistry {
		reg := NewNarrativeRegistry()
		reg.Register("gemini", geminiRepo.NewNarrativeRepository)
		return reg
	}); err != nil {
		return err
	}

	return nil
}
