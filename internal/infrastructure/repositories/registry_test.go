//go:build unit

package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repoanalyzer/internal/domain/repositories"
	"github.com/rios0rios0/repoanalyzer/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/repoanalyzer/test/infrastructure/repositorydoubles"
)

func TestContentRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should register and retrieve a provider by name", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewContentRegistry()
		reg.Register("test-provider", func(_ entities.ContentSettings) (domainRepos.ContentRepository, error) {
			return &doubles.SpyContentRepository{ProviderName: "test-provider"}, nil
		})

		// when
		repo, err := reg.Get(entities.ContentSettings{Provider: "test-provider"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "test-provider", repo.Name())
	})

	t.Run("should return error for unknown provider", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewContentRegistry()

		// when
		repo, err := reg.Get(entities.ContentSettings{Provider: "nonexistent"})

		// then
		require.Error(t, err)
		assert.Nil(t, repo)
		assert.Contains(t, err.Error(), "unknown content provider")
	})

	t.Run("should list registered provider names", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewContentRegistry()
		reg.Register("zeta", func(_ entities.ContentSettings) (domainRepos.ContentRepository, error) {
			return &doubles.SpyContentRepository{}, nil
		})
		reg.Register("alpha", func(_ entities.ContentSettings) (domainRepos.ContentRepository, error) {
			return &doubles.SpyContentRepository{}, nil
		})

		// when
		names := reg.Names()

		// then
		assert.Equal(t, []string{"alpha", "zeta"}, names)
	})
}

func TestNarrativeRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should register and retrieve a generator by name", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &doubles.StubNarrativeRepository{Text: "hello"}
		reg := repositories.NewNarrativeRegistry()
		reg.Register("stub", func(
			_ context.Context,
			_ entities.NarrativeSettings,
		) (domainRepos.NarrativeRepository, error) {
			return stub, nil
		})

		// when
		repo, err := reg.Get(context.Background(), entities.NarrativeSettings{Provider: "stub"})

		// then
		require.NoError(t, err)
		assert.Same(t, stub, repo)
	})

	t.Run("should return error for unknown generator", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewNarrativeRegistry()

		// when
		repo, err := reg.Get(context.Background(), entities.NarrativeSettings{Provider: "nonexistent"})

		// then
		require.Error(t, err)
		assert.Nil(t, repo)
		assert.Contains(t, err.Error(), "unknown narrative provider")
	})
}
