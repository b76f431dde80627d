//go:build unit

package commands_test

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repoanalyzer/internal/domain/commands"
	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	doubles "github.com/rios0rios0/repoanalyzer/test/infrastructure/repositorydoubles"
)

func walkSettings() entities.ContentSettings {
	return entities.ContentSettings{Concurrency: 3, MaxDepth: entities.DefaultMaxDepth}
}

func entryPaths(entries []entities.ContentEntry) []string {
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}
	return paths
}

func TestTreeWalker(t *testing.T) {
	t.Parallel()

	ref := entities.RepositoryReference{Owner: "acme", Name: "widgets"}

	t.Run("should expand directories in pre-order", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyContentRepository{}
		spy.AddDir("", "src").
			AddFile("", "README.md", "# widgets").
			AddDir("src", "lib").
			AddFile("src", "app.py", "").
			AddFile("src/lib", "util.py", "").
			AddDir("", "docs").
			AddFile("docs", "index.md", "")

		// when
		entries, err := commands.WalkTree(context.Background(), spy, walkSettings(), ref)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			"src", "src/lib", "src/lib/util.py", "src/app.py",
			"README.md",
			"docs", "docs/index.md",
		}, entryPaths(entries))
		assert.Len(t, spy.ListedPaths, 4)
	})

	t.Run("should return an empty tree for an empty repository", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyContentRepository{
			Directories: map[string][]entities.ContentEntry{"": {}},
		}

		// when
		entries, err := commands.WalkTree(context.Background(), spy, walkSettings(), ref)

		// then
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("should propagate a failed listing without a partial tree", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyContentRepository{}
		spy.AddFile("", "main.py", "").AddDir("", "broken")
		spy.ListErrs = map[string]error{
			"broken": &entities.TreeFetchError{Path: "broken", StatusCode: 500, Body: "boom"},
		}

		// when
		entries, err := commands.WalkTree(context.Background(), spy, walkSettings(), ref)

		// then
		require.ErrorIs(t, err, entities.ErrTreeFetch)
		assert.Nil(t, entries)
		assert.Contains(t, err.Error(), "500 - boom")
	})

	t.Run("should stop at the depth bound", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyContentRepository{}
		parent := ""
		for i := range 5 {
			name := "d" + strconv.Itoa(i)
			spy.AddDir(parent, name)
			parent = strings.TrimPrefix(parent+"/"+name, "/")
		}
		settings := walkSettings()
		settings.MaxDepth = 3

		// when
		entries, err := commands.WalkTree(context.Background(), spy, settings, ref)

		// then
		require.ErrorIs(t, err, entities.ErrTreeFetch)
		assert.Nil(t, entries)
		assert.Contains(t, err.Error(), "maximum directory depth 3 exceeded")
	})

	t.Run("should stop when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyContentRepository{}
		spy.AddFile("", "main.py", "")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		entries, err := commands.WalkTree(ctx, spy, walkSettings(), ref)

		// then
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, entries)
	})
}
