//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"path"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

// ContentEntryBuilder helps create test listing entries with a fluent interface.
type ContentEntryBuilder struct {
	*testkit.BaseBuilder
	path      string
	entryType entities.EntryType
	size      int
}

// NewContentEntryBuilder creates a new entry builder with sensible defaults.
func NewContentEntryBuilder() *ContentEntryBuilder {
	return &ContentEntryBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "main.py",
		entryType:   entities.EntryTypeFile,
	}
}

// WithPath sets the repository-relative path.
func (b *ContentEntryBuilder) WithPath(p string) *ContentEntryBuilder {
	b.path = p
	return b
}

// AsDir marks the entry as a directory.
func (b *ContentEntryBuilder) AsDir() *ContentEntryBuilder {
	b.entryType = entities.EntryTypeDir
	return b
}

// WithSize sets the reported size in bytes.
func (b *ContentEntryBuilder) WithSize(size int) *ContentEntryBuilder {
	b.size = size
	return b
}

// Build creates the entry (satisfies testkit.Builder interface).
func (b *ContentEntryBuilder) Build() interface{} {
	return b.BuildContentEntry()
}

// BuildContentEntry creates the entry with a concrete return type. Files get
// a download locator derived from their path.
func (b *ContentEntryBuilder) BuildContentEntry() entities.ContentEntry {
	entry := entities.ContentEntry{
		Name: path.Base(b.path),
		Path: b.path,
		Type: b.entryType,
		Size: b.size,
	}
	if entry.IsFile() {
		entry.DownloadURL = "https://raw.example.test/" + b.path
	}
	return entry
}

// Reset clears the builder state, allowing it to be reused.
func (b *ContentEntryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "main.py"
	b.entryType = entities.EntryTypeFile
	b.size = 0
	return b
}

// Clone creates a deep copy of the ContentEntryBuilder.
func (b *ContentEntryBuilder) Clone() testkit.Builder {
	return &ContentEntryBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:        b.path,
		entryType:   b.entryType,
		size:        b.size,
	}
}
