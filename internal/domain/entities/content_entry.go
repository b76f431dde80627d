package entities

// EntryType is the kind of node returned by a directory listing.
type EntryType string

const (
	EntryTypeFile EntryType = "file"
	EntryTypeDir  EntryType = "dir"
)

// ContentEntry is one node of a repository listing. DownloadURL is only set
// for files.
type ContentEntry struct {
	Name        string
	Path        string
	Type        EntryType
	DownloadURL string
	Size        int
}

// IsDir reports whether the entry must be expanded by the tree walker.
func (e ContentEntry) IsDir() bool { return e.Type == EntryTypeDir }

// IsFile reports whether the entry is a regular file. Symlinks and
// submodules are neither files nor directories.
func (e ContentEntry) IsFile() bool { return e.Type == EntryTypeFile }
