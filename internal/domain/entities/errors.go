package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference matches any *InvalidReferenceError.
	ErrInvalidReference = errors.New("invalid repository reference")
	// ErrTreeFetch matches any *TreeFetchError.
	ErrTreeFetch = errors.New("repository tree fetch failed")
	// ErrNoContent matches any *NoContentError.
	ErrNoContent = errors.New("no analyzable files found")
	// ErrFileUnavailable matches any *FileUnavailableError.
	ErrFileUnavailable = errors.New("file unavailable")
)

// InvalidReferenceError is returned when the input does not decompose into
// an owner/name pair. No network call is made in that case.
type InvalidReferenceError struct {
	Raw    string
	Reason string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf(
		"invalid repository reference %q: %s (expected https://github.com/owner/repo or owner/repo)",
		e.Raw, e.Reason,
	)
}

func (e *InvalidReferenceError) Is(target error) bool { return target == ErrInvalidReference }

// TreeFetchError is returned when a directory listing fails. The partial tree
// is discarded.
type TreeFetchError struct {
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *TreeFetchError) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch contents of %q: %d - %s", path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("failed to fetch contents of %q: %v", path, e.Err)
}

func (e *TreeFetchError) Unwrap() error { return e.Err }

func (e *TreeFetchError) Is(target error) bool { return target == ErrTreeFetch }

// NoContentError is returned when traversal completed but no source file
// survived the fetch stage.
type NoContentError struct {
	Repository string
}

func (e *NoContentError) Error() string {
	return fmt.Sprintf("no relevant code files found in repository %q", e.Repository)
}

func (e *NoContentError) Is(target error) bool { return target == ErrNoContent }

// FileUnavailableError marks a single file whose download failed. It never
// aborts a run: the file is dropped from the analysis.
type FileUnavailableError struct {
	Locator    string
	StatusCode int
	Err        error
}

func (e *FileUnavailableError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("file %q unavailable: status %d", e.Locator, e.StatusCode)
	}
	return fmt.Sprintf("file %q unavailable: %v", e.Locator, e.Err)
}

func (e *FileUnavailableError) Unwrap() error { return e.Err }

func (e *FileUnavailableError) Is(target error) bool { return target == ErrFileUnavailable }
