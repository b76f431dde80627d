package repositories

import (
	"context"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

// ContentRepository abstracts the repository host API (GitHub, etc.). One
// instance is created per analysis run and owns that run's HTTP session.
type ContentRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// ListDirectory returns the entries of one directory; an empty path is the
	// repository root. A non-success status yields an *entities.TreeFetchError.
	ListDirectory(
		ctx context.Context,
		ref entities.RepositoryReference,
		path string,
	) ([]entities.ContentEntry, error)

	// DownloadFile returns the raw text behind a download locator. A
	// non-success status yields an *entities.FileUnavailableError.
	DownloadFile(ctx context.Context, locator string) (string, error)

	// CountCommits returns the number of commits on the default branch.
	CountCommits(ctx context.Context, ref entities.RepositoryReference) (int, error)

	// Close releases the session. It is safe to call more than once.
	Close()
}
