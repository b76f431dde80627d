//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repoanalyzer/internal/domain/commands"
	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	"github.com/rios0rios0/repoanalyzer/test/domain/commanddoubles"
)

func TestBatchCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should keep going after a failed repository", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubAnalyzeCommand{
			Results: map[string]entities.RepoAnalysis{
				"acme/one":   {Name: "acme/one", FileCount: 1},
				"acme/three": {Name: "acme/three", FileCount: 3},
			},
			Errs: map[string]error{
				"acme/two": &entities.NoContentError{Repository: "acme/two"},
			},
		}
		cmd := commands.NewBatchCommand(stub)

		// when
		results, err := cmd.Execute(context.Background(), newTestSettings(), commands.BatchOptions{
			References: []string{"acme/one", "acme/two", "acme/three"},
		})

		// then
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "acme/one", results[0].Analysis.Name)
		require.ErrorIs(t, results[1].Err, entities.ErrNoContent)
		assert.Equal(t, 3, results[2].Analysis.FileCount)
		assert.Equal(t, 3, stub.ExecuteCallCount)
	})

	t.Run("should cancel the remaining repositories on the first failure", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubAnalyzeCommand{
			Results: map[string]entities.RepoAnalysis{
				"acme/two":   {Name: "acme/two"},
				"acme/three": {Name: "acme/three"},
			},
			Errs: map[string]error{
				"acme/one": &entities.NoContentError{Repository: "acme/one"},
			},
		}
		cmd := commands.NewBatchCommand(stub)
		settings := newTestSettings()
		settings.Batch.Parallelism = 1

		// when
		results, err := cmd.Execute(context.Background(), settings, commands.BatchOptions{
			References: []string{"acme/one", "acme/two", "acme/three"},
			FailFast:   true,
		})

		// then
		require.ErrorIs(t, err, entities.ErrNoContent)
		assert.Contains(t, err.Error(), "acme/one")
		require.Len(t, results, 3)
		require.ErrorIs(t, results[0].Err, entities.ErrNoContent)
		require.ErrorIs(t, results[1].Err, commands.ErrBatchAborted)
		require.ErrorIs(t, results[2].Err, commands.ErrBatchAborted)
		assert.Equal(t, "acme/three", results[2].Reference)
		assert.Equal(t, 1, stub.ExecuteCallCount)
	})

	t.Run("should fall back to the configured repositories", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubAnalyzeCommand{}
		cmd := commands.NewBatchCommand(stub)
		settings := newTestSettings()
		settings.Batch.Repositories = []string{"acme/configured"}

		// when
		results, err := cmd.Execute(context.Background(), settings, commands.BatchOptions{})

		// then
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "acme/configured", results[0].Reference)
		assert.Equal(t, []string{"acme/configured"}, stub.References)
	})

	t.Run("should fail when there is nothing to analyze", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubAnalyzeCommand{}
		cmd := commands.NewBatchCommand(stub)

		// when
		results, err := cmd.Execute(context.Background(), newTestSettings(), commands.BatchOptions{})

		// then
		require.Error(t, err)
		assert.Nil(t, results)
		assert.Zero(t, stub.ExecuteCallCount)
	})
}
