//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/repoanalyzer/internal/domain/repositories"
)

// StubNarrativeRepository implements repositories.NarrativeRepository with a
// canned answer and records every prompt it receives.
type StubNarrativeRepository struct {
	Text string
	Err  error

	// CancelOnGenerate is invoked before answering, to simulate a caller
	// abandoning the run while the request is in flight.
	CancelOnGenerate context.CancelFunc

	mu      sync.Mutex
	Prompts []string
}

var _ repositories.NarrativeRepository = (*StubNarrativeRepository)(nil)

func (s *StubNarrativeRepository) Name() string { return "stub" }

func (s *StubNarrativeRepository) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.Prompts = append(s.Prompts, prompt)
	s.mu.Unlock()

	if s.CancelOnGenerate != nil {
		s.CancelOnGenerate()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}

// PromptCount returns how many prompts were received.
func (s *StubNarrativeRepository) PromptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}
