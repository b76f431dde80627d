//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

// FetchedFileBuilder helps create test files with a fluent interface.
type FetchedFileBuilder struct {
	*testkit.BaseBuilder
	path    string
	content string
}

// NewFetchedFileBuilder creates a new file builder with sensible defaults.
func NewFetchedFileBuilder() *FetchedFileBuilder {
	return &FetchedFileBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "main.py",
		content:     "",
	}
}

// WithPath sets the repository-relative path. The name, extension and role
// are derived from it.
func (b *FetchedFileBuilder) WithPath(path string) *FetchedFileBuilder {
	b.path = path
	return b
}

// WithContent sets the raw text.
func (b *FetchedFileBuilder) WithContent(content string) *FetchedFileBuilder {
	b.content = content
	return b
}

// Build creates the file (satisfies testkit.Builder interface).
func (b *FetchedFileBuilder) Build() interface{} {
	return b.BuildFetchedFile()
}

// BuildFetchedFile creates the file with a concrete return type.
func (b *FetchedFileBuilder) BuildFetchedFile() entities.FetchedFile {
	entry := NewContentEntryBuilder().WithPath(b.path).BuildContentEntry()
	role, _ := entities.ClassifyFile(entry.Name)
	return entities.NewFetchedFile(entry, b.content, role)
}

// Reset clears the builder state, allowing it to be reused.
func (b *FetchedFileBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "main.py"
	b.content = ""
	return b
}

// Clone creates a deep copy of the FetchedFileBuilder.
func (b *FetchedFileBuilder) Clone() testkit.Builder {
	return &FetchedFileBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:        b.path,
		content:     b.content,
	}
}
