package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

// Batch is the interface for the batch command (several repositories).
type Batch interface {
	Execute(ctx context.Context, settings *entities.Settings, opts BatchOptions) ([]BatchResult, error)
}

// ErrBatchAborted marks the repositories left unanalyzed after a fail-fast stop.
var ErrBatchAborted = errors.New("skipped: an earlier repository failed")

// BatchOptions holds runtime options for a batch run.
type BatchOptions struct {
	References []string // If empty, settings.Batch.Repositories is used
	FailFast   bool     // Cancel the remaining analyses on the first failure
}

// BatchResult is the outcome of one repository in a batch.
type BatchResult struct {
	Reference string
	Analysis  entities.RepoAnalysis
	Err       error
}

// BatchCommand analyzes independent repositories in parallel. Runs share no
// mutable state; one failed repository does not stop the others unless
// FailFast is set.
type BatchCommand struct {
	analyze Analyze
}

// NewBatchCommand creates a new BatchCommand on top of the single-repository command.
func NewBatchCommand(analyze Analyze) *BatchCommand {
	return &BatchCommand{analyze: analyze}
}

// Execute runs every analysis and returns the results in input order.
func (it *BatchCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts BatchOptions,
) ([]BatchResult, error) {
	references := opts.References
	if len(references) == 0 {
		references = settings.Batch.Repositories
	}
	if len(references) == 0 {
		return nil, errors.New("no repositories to analyze: pass them as arguments or set batch.repositories")
	}

	parallelism := settings.Batch.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var failOnce sync.Once
	var firstErr error

	results := make([]BatchResult, len(references))
	var group errgroup.Group
	group.SetLimit(parallelism)
	for i, reference := range references {
		group.Go(func() error {
			if opts.FailFast && runCtx.Err() != nil && ctx.Err() == nil {
				results[i] = BatchResult{Reference: reference, Err: ErrBatchAborted}
				return nil
			}

			analysis, err := it.analyze.Execute(runCtx, settings, AnalyzeOptions{Reference: reference})
			results[i] = BatchResult{Reference: reference, Analysis: analysis, Err: err}
			if err != nil && opts.FailFast {
				failOnce.Do(func() {
					firstErr = fmt.Errorf("analysis of %q failed: %w", reference, err)
					cancel()
				})
			}
			return nil
		})
	}
	_ = group.Wait()

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			logger.Errorf("Failed to analyze %q: %v", result.Reference, result.Err)
			failed++
		}
	}
	logger.Infof(
		"Batch complete: %d repositories processed, %d succeeded, %d failed",
		len(results), len(results)-failed, failed,
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return results, ctxErr
	}
	if firstErr != nil {
		return results, firstErr
	}
	return results, nil
}
