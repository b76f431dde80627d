package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	genai "google.golang.org/genai"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	"github.com/rios0rios0/repoanalyzer/internal/domain/repositories"
)

const (
	providerName     = "gemini"
	baseBackoffDelay = 300 * time.Millisecond
)

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("gemini: empty response from model")

// GeminiNarrativeRepository is a thin wrapper around the official genai client.
type GeminiNarrativeRepository struct {
	client   *genai.Client
	model    string
	retryMax int
}

// NewNarrativeRepository creates a Gemini-backed generator. The HTTP client
// carries the extended timeout of a large-context call.
func NewNarrativeRepository(
	ctx context.Context,
	settings entities.NarrativeSettings,
) (repositories.NarrativeRepository, error) {
	if settings.APIKey == "" {
		return nil, errors.New("gemini API key is not configured (set GEMINI_API_KEY or narrative.api_key)")
	}

	cfg := &genai.ClientConfig{
		APIKey:     settings.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: settings.Timeout},
	}
	if settings.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: settings.BaseURL}
	}

	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := settings.Model
	if model == "" {
		model = entities.DefaultNarrativeModel
	}

	return &GeminiNarrativeRepository{client: cli, model: model, retryMax: settings.RetryMax}, nil
}

func (g *GeminiNarrativeRepository) Name() string { return providerName + ":" + g.model }

// Generate sends the prompt as a single user turn, retrying transient failures
// with exponential backoff until retryMax is exhausted or ctx is done. Client
// errors other than 429 are returned at once.
func (g *GeminiNarrativeRepository) Generate(ctx context.Context, prompt string) (string, error) {
	logger.Debugf("Narrative request (%s): %d bytes", g.Name(), len(prompt))

	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}}

	var lastErr error
	for attempt := 0; attempt <= g.retryMax; attempt++ {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
		if err == nil {
			if text := responseText(resp); text != "" {
				return text, nil
			}
			err = ErrEmptyResponse
		}
		lastErr = err

		if attempt == g.retryMax || isPermanent(err) {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(baseBackoffDelay * time.Duration(1<<attempt)):
		}
	}

	return "", lastErr
}

// isPermanent reports whether the service rejected the request itself, so
// sending it again cannot succeed.
func isPermanent(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code >= http.StatusBadRequest &&
		apiErr.Code < http.StatusInternalServerError &&
		apiErr.Code != http.StatusTooManyRequests
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
