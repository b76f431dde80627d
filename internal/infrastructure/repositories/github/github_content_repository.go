package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/time/rate"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	"github.com/rios0rios0/repoanalyzer/internal/domain/repositories"
)

const (
	providerName   = "github"
	commitsPerPage = 1
)

// GitHubContentRepository implements repositories.ContentRepository over the
// GitHub REST API. Every call of one instance shares a rate limiter and a
// pooled HTTP session.
type GitHubContentRepository struct {
	client     *gh.Client
	httpClient *http.Client
	limiter    *rate.Limiter
	release    func()
	closeOnce  sync.Once
}

// NewContentRepository creates a GitHub repository for one analysis run.
func NewContentRepository(settings entities.ContentSettings) (repositories.ContentRepository, error) {
	httpClient, release := newHTTPClient(settings)

	client := gh.NewClient(httpClient)
	if settings.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(settings.BaseURL, "/") + "/")
		if err != nil {
			release()
			return nil, fmt.Errorf("invalid content base URL %q: %w", settings.BaseURL, err)
		}
		client.BaseURL = baseURL
	}

	return &GitHubContentRepository{
		client:     client,
		httpClient: httpClient,
		limiter:    newLimiter(settings.RequestsPerSecond, settings.Burst),
		release:    release,
	}, nil
}

func (p *GitHubContentRepository) Name() string { return providerName }

// ListDirectory lists one directory through the contents API.
func (p *GitHubContentRepository) ListDirectory(
	ctx context.Context,
	ref entities.RepositoryReference,
	path string,
) ([]entities.ContentEntry, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fileContent, dirContents, resp, err := p.getContents(ctx, ref, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, listingError(path, resp, err)
	}
	if fileContent != nil {
		return nil, &entities.TreeFetchError{
			Path: path,
			Err:  fmt.Errorf("path %q is a file, not a directory", path),
		}
	}

	entries := make([]entities.ContentEntry, 0, len(dirContents))
	for _, item := range dirContents {
		entries = append(entries, entities.ContentEntry{
			Name:        item.GetName(),
			Path:        item.GetPath(),
			Type:        entities.EntryType(item.GetType()),
			DownloadURL: item.GetDownloadURL(),
			Size:        item.GetSize(),
		})
	}

	return entries, nil
}

// getContents issues the contents API request itself instead of going through
// Repositories.GetContents, which refuses any path containing "..". Names such
// as "release..v2" are valid; only a segment that is exactly ".." is rejected.
func (p *GitHubContentRepository) getContents(
	ctx context.Context,
	ref entities.RepositoryReference,
	path string,
) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error) {
	escapedPath, err := escapeContentsPath(path)
	if err != nil {
		return nil, nil, nil, err
	}

	req, err := p.client.NewRequest(
		http.MethodGet,
		fmt.Sprintf("repos/%s/%s/contents/%s", url.PathEscape(ref.Owner), url.PathEscape(ref.Name), escapedPath),
		nil,
	)
	if err != nil {
		return nil, nil, nil, err
	}

	var raw json.RawMessage
	resp, err := p.client.Do(ctx, req, &raw)
	if err != nil {
		return nil, nil, resp, err
	}

	var dirContents []*gh.RepositoryContent
	if dirErr := json.Unmarshal(raw, &dirContents); dirErr == nil {
		return nil, dirContents, resp, nil
	}
	var fileContent *gh.RepositoryContent
	if fileErr := json.Unmarshal(raw, &fileContent); fileErr != nil || fileContent == nil {
		return nil, nil, resp, fmt.Errorf("unexpected contents payload: %w", fileErr)
	}
	return fileContent, nil, resp, nil
}

// escapeContentsPath escapes every segment of a repository path.
func escapeContentsPath(path string) (string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "", nil
	}

	segments := strings.Split(trimmed, "/")
	for i, segment := range segments {
		if segment == ".." || segment == "." || segment == "" {
			return "", fmt.Errorf("invalid path segment %q in %q", segment, path)
		}
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/"), nil
}

// DownloadFile fetches the raw content behind a download URL.
func (p *GitHubContentRepository) DownloadFile(ctx context.Context, locator string) (string, error) {
	if locator == "" {
		return "", &entities.FileUnavailableError{Err: errors.New("missing download locator")}
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return "", &entities.FileUnavailableError{Locator: locator, Err: err}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &entities.FileUnavailableError{Locator: locator, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &entities.FileUnavailableError{Locator: locator, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &entities.FileUnavailableError{Locator: locator, Err: err}
	}

	return string(body), nil
}

// CountCommits asks for one commit per page and reads the total from the
// last-page link, so the count costs a single request.
func (p *GitHubContentRepository) CountCommits(
	ctx context.Context,
	ref entities.RepositoryReference,
) (int, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	commits, resp, err := p.client.Repositories.ListCommits(
		ctx, ref.Owner, ref.Name,
		&gh.CommitsListOptions{ListOptions: gh.ListOptions{PerPage: commitsPerPage}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to list commits: %w", err)
	}

	if resp != nil && resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	return len(commits), nil
}

// Close releases pooled connections of the session.
func (p *GitHubContentRepository) Close() {
	p.closeOnce.Do(p.release)
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// listingError converts a contents API failure into a *entities.TreeFetchError
// carrying the remote status and message when there is one.
func listingError(path string, resp *gh.Response, err error) error {
	fetchErr := &entities.TreeFetchError{Path: path, Err: err}

	if resp != nil && resp.Response != nil {
		fetchErr.StatusCode = resp.StatusCode
	}

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) {
		fetchErr.Body = errResp.Message
		if fetchErr.StatusCode == 0 && errResp.Response != nil {
			fetchErr.StatusCode = errResp.Response.StatusCode
		}
	}
	if fetchErr.Body == "" {
		fetchErr.Body = err.Error()
	}

	return fetchErr
}
