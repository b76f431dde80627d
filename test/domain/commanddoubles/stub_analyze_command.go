//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/repoanalyzer/internal/domain/commands"
	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

// StubAnalyzeCommand is a stub implementation of commands.Analyze. Results
// and errors are looked up by the raw reference.
type StubAnalyzeCommand struct {
	Results map[string]entities.RepoAnalysis
	Errs    map[string]error

	mu               sync.Mutex
	ExecuteCallCount int
	LastSettings     *entities.Settings
	References       []string
}

var _ commands.Analyze = (*StubAnalyzeCommand)(nil)

func (s *StubAnalyzeCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.AnalyzeOptions,
) (entities.RepoAnalysis, error) {
	s.mu.Lock()
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.References = append(s.References, opts.Reference)
	s.mu.Unlock()

	if err, ok := s.Errs[opts.Reference]; ok {
		return entities.RepoAnalysis{}, err
	}
	return s.Results[opts.Reference], nil
}
