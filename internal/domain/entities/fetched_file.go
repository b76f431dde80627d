package entities

import (
	"path"
	"strings"
)

// FileRole describes why a file was downloaded.
type FileRole int

const (
	// RoleSource marks a code, markup or data file from the allow-list.
	RoleSource FileRole = 1 << iota
	// RoleManifest marks the dependency manifest.
	RoleManifest
)

// Has reports whether every bit of other is set.
func (r FileRole) Has(other FileRole) bool { return r&other == other }

// FetchedFile is the downloaded content of one analyzable file. It lives only
// for the run that created it; the content never reaches the final record.
type FetchedFile struct {
	Name      string
	Path      string
	Extension string
	Content   string
	Role      FileRole
}

// NewFetchedFile builds a FetchedFile for the given entry, deriving the
// extension from the file name.
func NewFetchedFile(entry ContentEntry, content string, role FileRole) FetchedFile {
	return FetchedFile{
		Name:      entry.Name,
		Path:      entry.Path,
		Extension: FileExtension(entry.Name),
		Content:   content,
		Role:      role,
	}
}

// FileExtension returns the lower-cased extension of name including the dot,
// or an empty string when there is none.
func FileExtension(name string) string {
	return strings.ToLower(path.Ext(name))
}
