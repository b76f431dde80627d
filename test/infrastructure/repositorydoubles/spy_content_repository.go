//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	"github.com/rios0rios0/repoanalyzer/internal/domain/repositories"
)

// SpyContentRepository implements repositories.ContentRepository over an
// in-memory tree. It is safe for concurrent use.
type SpyContentRepository struct {
	// --- identity ---
	ProviderName string

	// --- ListDirectory ---
	Directories map[string][]entities.ContentEntry // keyed by directory path, "" is the root
	ListErrs    map[string]error

	// --- DownloadFile ---
	Files        map[string]string // keyed by download locator
	DownloadErrs map[string]error

	// --- CountCommits ---
	Commits  int
	CountErr error

	mu                 sync.Mutex
	ListedPaths        []string
	DownloadedLocators []string
	CountCalls         int
	CloseCalls         int
}

var _ repositories.ContentRepository = (*SpyContentRepository)(nil)

func (s *SpyContentRepository) Name() string {
	if s.ProviderName == "" {
		return "spy"
	}
	return s.ProviderName
}

func (s *SpyContentRepository) ListDirectory(
	ctx context.Context,
	_ entities.RepositoryReference,
	path string,
) ([]entities.ContentEntry, error) {
	s.mu.Lock()
	s.ListedPaths = append(s.ListedPaths, path)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := s.ListErrs[path]; ok {
		return nil, err
	}
	entries, ok := s.Directories[path]
	if !ok {
		return nil, &entities.TreeFetchError{Path: path, StatusCode: http.StatusNotFound, Body: "Not Found"}
	}
	return entries, nil
}

func (s *SpyContentRepository) DownloadFile(ctx context.Context, locator string) (string, error) {
	s.mu.Lock()
	s.DownloadedLocators = append(s.DownloadedLocators, locator)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := s.DownloadErrs[locator]; ok {
		return "", err
	}
	content, ok := s.Files[locator]
	if !ok {
		return "", &entities.FileUnavailableError{Locator: locator, StatusCode: http.StatusNotFound}
	}
	return content, nil
}

func (s *SpyContentRepository) CountCommits(ctx context.Context, _ entities.RepositoryReference) (int, error) {
	s.mu.Lock()
	s.CountCalls++
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.Commits, s.CountErr
}

func (s *SpyContentRepository) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CloseCalls++
}

// TotalCalls returns the number of remote operations issued so far.
func (s *SpyContentRepository) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ListedPaths) + len(s.DownloadedLocators) + s.CountCalls
}

// AddFile registers a file entry under dir and its downloadable content.
func (s *SpyContentRepository) AddFile(dir, name, content string) *SpyContentRepository {
	path := joinPath(dir, name)
	locator := "https://raw.example.test/" + path
	s.ensure()
	s.Directories[dir] = append(s.Directories[dir], entities.ContentEntry{
		Name:        name,
		Path:        path,
		Type:        entities.EntryTypeFile,
		DownloadURL: locator,
		Size:        len(content),
	})
	s.Files[locator] = content
	return s
}

// AddDir registers a directory entry under parent and an empty listing for it.
func (s *SpyContentRepository) AddDir(parent, name string) *SpyContentRepository {
	path := joinPath(parent, name)
	s.ensure()
	s.Directories[parent] = append(s.Directories[parent], entities.ContentEntry{
		Name: name,
		Path: path,
		Type: entities.EntryTypeDir,
	})
	if _, ok := s.Directories[path]; !ok {
		s.Directories[path] = []entities.ContentEntry{}
	}
	return s
}

// LocatorOf returns the locator AddFile assigned to a path.
func LocatorOf(path string) string {
	return "https://raw.example.test/" + path
}

func (s *SpyContentRepository) ensure() {
	if s.Directories == nil {
		s.Directories = map[string][]entities.ContentEntry{"": {}}
	}
	if s.Files == nil {
		s.Files = make(map[string]string)
	}
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// ErrSpyTransport is a canned transport failure.
var ErrSpyTransport = errors.New("spy transport failure") //nolint:gochecknoglobals // test sentinel
