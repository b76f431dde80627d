//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

func TestNormalizeReference(t *testing.T) {
	t.Parallel()

	t.Run("should accept supported forms", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			raw  string
		}{
			{name: "should accept https URL", raw: "https://github.com/octo/hello"},
			{name: "should accept trailing slash", raw: "https://github.com/octo/hello/"},
			{name: "should accept .git suffix", raw: "https://github.com/octo/hello.git"},
			{name: "should accept www host", raw: "https://www.github.com/octo/hello"},
			{name: "should accept bare pair", raw: "octo/hello"},
			{name: "should accept host without scheme", raw: "github.com/octo/hello"},
			{name: "should accept SSH remote", raw: "git@github.com:octo/hello.git"},
			{name: "should trim surrounding whitespace", raw: "  octo/hello \n"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				raw := tt.raw

				// when
				ref, err := entities.NormalizeReference(raw)

				// then
				require.NoError(t, err)
				assert.Equal(t, "octo", ref.Owner)
				assert.Equal(t, "hello", ref.Name)
				assert.Equal(t, "octo/hello", ref.FullName())
			})
		}
	})

	t.Run("should reject malformed references", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			raw  string
		}{
			{name: "should reject empty input", raw: ""},
			{name: "should reject single segment", raw: "not-a-url"},
			{name: "should reject owner only URL", raw: "https://github.com/octo"},
			{name: "should reject deep path", raw: "https://github.com/octo/hello/tree/main"},
			{name: "should reject foreign host", raw: "https://gitlab.com/octo/hello"},
			{name: "should reject empty owner", raw: "/hello"},
			{name: "should reject embedded space", raw: "octo/hel lo"},
			{name: "should reject query string", raw: "octo/hello?tab=readme"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				raw := tt.raw

				// when
				ref, err := entities.NormalizeReference(raw)

				// then
				require.ErrorIs(t, err, entities.ErrInvalidReference)
				assert.Equal(t, entities.RepositoryReference{}, ref)

				var invalid *entities.InvalidReferenceError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, raw, invalid.Raw)
			})
		}
	})

	t.Run("should be idempotent on its own output", func(t *testing.T) {
		t.Parallel()

		// given
		first, err := entities.NormalizeReference("https://github.com/octo/hello.git")
		require.NoError(t, err)

		// when
		second, err := entities.NormalizeReference(first.FullName())

		// then
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
