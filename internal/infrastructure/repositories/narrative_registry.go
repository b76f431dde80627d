package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repoanalyzer/internal/domain/repositories"
)

// NarrativeFactory creates a NarrativeRepository for one analysis run.
type NarrativeFactory func(
	ctx context.Context,
	settings entities.NarrativeSettings,
) (domainRepos.NarrativeRepository, error)

// NarrativeRegistry manages all registered text-generation implementations.
type NarrativeRegistry struct {
	factories map[string]NarrativeFactory
}

// NewNarrativeRegistry creates an empty narrative registry.
func NewNarrativeRegistry() *NarrativeRegistry {
	return &NarrativeRegistry{
		factories: make(map[string]NarrativeFactory),
	}
}

// Register adds a factory under the given name (e.g. "gemini").
func (r *NarrativeRegistry) Register(name string, factory NarrativeFactory) {
	r.factories[name] = factory
}

// Get returns a generator for the configured provider.
func (r *NarrativeRegistry) Get(
	ctx context.Context,
	settings entities.NarrativeSettings,
) (domainRepos.NarrativeRepository, error) {
	factory, ok := r.factories[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown narrative provider: %q", settings.Provider)
	}
	return factory(ctx, settings)
}

// Names returns the sorted list of registered generator names.
func (r *NarrativeRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
