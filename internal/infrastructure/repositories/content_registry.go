package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repoanalyzer/internal/domain/repositories"
)

// ContentFactory creates a ContentRepository for one analysis run.
type ContentFactory func(settings entities.ContentSettings) (domainRepos.ContentRepository, error)

// ContentRegistry manages all registered repository host implementations.
type ContentRegistry struct {
	factories map[string]ContentFactory
}

// NewContentRegistry creates an empty content registry.
func NewContentRegistry() *ContentRegistry {
	return &ContentRegistry{
		factories: make(map[string]ContentFactory),
	}
}

// Register adds a factory under the given name (e.g. "github").
func (r *ContentRegistry) Register(name string, factory ContentFactory) {
	r.factories[name] = factory
}

// Get returns a fresh repository instance for the configured provider.
func (r *ContentRegistry) Get(settings entities.ContentSettings) (domainRepos.ContentRepository, error) {
	factory, ok := r.factories[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown content provider: %q", settings.Provider)
	}
	return factory(settings)
}

// Names returns the sorted list of registered provider names.
func (r *ContentRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
