//go:build unit

package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	"github.com/rios0rios0/repoanalyzer/test/domain/entitybuilders"
)

func TestBuildSummaryPrompt(t *testing.T) {
	t.Parallel()

	t.Run("should embed metadata and source files", func(t *testing.T) {
		t.Parallel()

		// given
		analysis := entities.RepoAnalysis{
			Name:            "octo/hello",
			CommitCount:     7,
			FileCount:       1,
			ImportedModules: []string{"os"},
			Dependencies:    []string{},
			APIs:            []string{entities.HTTPAPILabel},
			Functions:       []string{"main"},
			Classes:         []string{},
		}
		files := []entities.FetchedFile{
			entitybuilders.NewFetchedFileBuilder().WithPath("src/main.py").WithContent("import os").BuildFetchedFile(),
			entitybuilders.NewFetchedFileBuilder().WithPath("requirements.txt").WithContent("secret-pin").BuildFetchedFile(),
		}

		// when
		prompt := entities.BuildSummaryPrompt(analysis, files)

		// then
		assert.Contains(t, prompt, "GitHub repository 'octo/hello'")
		assert.Contains(t, prompt, "Commit Count: 7\n")
		assert.Contains(t, prompt, "Dependencies (from requirements.txt): None found\n")
		assert.Contains(t, prompt, "APIs Detected: HTTP API calls detected\n")
		assert.Contains(t, prompt, "## src/main.py\n\n```py\nimport os\n```")
		assert.NotContains(t, prompt, "secret-pin")
		assert.Contains(t, prompt, "5. **Unique Features and Notable Details**")
	})
}

func TestDegradedNarrative(t *testing.T) {
	t.Parallel()

	t.Run("should embed the failure detail", func(t *testing.T) {
		t.Parallel()

		// given
		err := errors.New("quota exceeded")

		// when
		narrative := entities.DegradedNarrative(err)

		// then
		assert.Equal(t, "Narrative generation failed: quota exceeded", narrative)
	})
}
