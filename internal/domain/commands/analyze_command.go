package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	"github.com/rios0rios0/repoanalyzer/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/repoanalyzer/internal/infrastructure/repositories"
)

// Analyze is the interface for the analyze command (single repository).
type Analyze interface {
	Execute(ctx context.Context, settings *entities.Settings, opts AnalyzeOptions) (entities.RepoAnalysis, error)
}

// AnalyzeOptions holds runtime options for a single analysis.
type AnalyzeOptions struct {
	Reference string // URL-like repository reference, e.g. https://github.com/owner/repo
}

// AnalyzeCommand runs the analysis pipeline of one repository:
// normalize -> count commits -> walk tree -> download -> extract -> aggregate -> summarize.
type AnalyzeCommand struct {
	contentRegistry   *infraRepos.ContentRegistry
	narrativeRegistry *infraRepos.NarrativeRegistry
}

// NewAnalyzeCommand creates a new AnalyzeCommand with the given registries.
func NewAnalyzeCommand(
	contentRegistry *infraRepos.ContentRegistry,
	narrativeRegistry *infraRepos.NarrativeRegistry,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		contentRegistry:   contentRegistry,
		narrativeRegistry: narrativeRegistry,
	}
}

// Execute analyzes the referenced repository. Either a complete record is
// returned or a terminal error; a degraded narrative is not an error.
func (it *AnalyzeCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts AnalyzeOptions,
) (entities.RepoAnalysis, error) {
	ref, err := entities.NormalizeReference(opts.Reference)
	if err != nil {
		return entities.RepoAnalysis{}, err
	}

	log := logger.WithFields(logger.Fields{
		"run_id":     uuid.NewString(),
		"repository": ref.FullName(),
	})
	log.Info("Starting repository analysis")

	content, err := it.contentRegistry.Get(settings.Content)
	if err != nil {
		return entities.RepoAnalysis{}, err
	}
	defer content.Close()

	commitCount := countCommits(ctx, log, content, ref)

	entries, err := newTreeWalker(content, settings.Content).Walk(ctx, ref)
	if err != nil {
		log.Errorf("Failed to walk repository tree: %v", err)
		return entities.RepoAnalysis{}, err
	}
	log.Infof("Discovered %d entries", len(entries))

	files, err := downloadFiles(ctx, log, content, entries, settings.Content.Concurrency)
	if err != nil {
		return entities.RepoAnalysis{}, err
	}

	extractions := make([]entities.ExtractionResult, 0, len(files))
	for _, file := range files {
		extractions = append(extractions, entities.Extract(file))
	}

	analysis, err := entities.Aggregate(ref, commitCount, files, extractions)
	if err != nil {
		log.Warnf("Nothing to analyze: %v", err)
		return entities.RepoAnalysis{}, err
	}

	narrative, err := it.summarize(ctx, log, settings.Narrative, analysis, files)
	if err != nil {
		return entities.RepoAnalysis{}, err
	}

	log.Infof(
		"Analysis complete: %d files, %d functions, %d classes, %d dependencies",
		analysis.FileCount, len(analysis.Functions), len(analysis.Classes), len(analysis.Dependencies),
	)
	return analysis.WithNarrative(narrative), nil
}

// countCommits degrades to zero when the lookup fails.
func countCommits(
	ctx context.Context,
	log *logger.Entry,
	content repositories.ContentRepository,
	ref entities.RepositoryReference,
) int {
	count, err := content.CountCommits(ctx, ref)
	if err != nil {
		log.Warnf("Failed to count commits, using 0: %v", err)
		return 0
	}
	log.Debugf("Repository has %d commits", count)
	return count
}

// downloadFiles fetches every analyzable file, bounded by the worker count.
// Unavailable files are logged and dropped; any other failure (cancellation)
// aborts. The result keeps the walker order.
func downloadFiles(
	ctx context.Context,
	log *logger.Entry,
	content repositories.ContentRepository,
	entries []entities.ContentEntry,
	concurrency int,
) ([]entities.FetchedFile, error) {
	type candidate struct {
		entry entities.ContentEntry
		role  entities.FileRole
	}

	var candidates []candidate
	for _, entry := range entries {
		if !entry.IsFile() {
			continue
		}
		role, ok := entities.ClassifyFile(entry.Name)
		if !ok {
			log.Debugf("Skipping non-analyzable file %q", entry.Path)
			continue
		}
		candidates = append(candidates, candidate{entry: entry, role: role})
	}

	if concurrency < 1 {
		concurrency = 1
	}

	fetched := make([]*entities.FetchedFile, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for i, c := range candidates {
		group.Go(func() error {
			text, err := content.DownloadFile(groupCtx, c.entry.DownloadURL)
			if err != nil {
				if errors.Is(err, entities.ErrFileUnavailable) {
					log.Warnf("Skipping %q: %v", c.entry.Path, err)
					return nil
				}
				return err
			}
			file := entities.NewFetchedFile(c.entry, text, c.role)
			fetched[i] = &file
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	files := make([]entities.FetchedFile, 0, len(fetched))
	for _, file := range fetched {
		if file != nil {
			files = append(files, *file)
		}
	}
	log.Infof("Downloaded %d of %d analyzable files", len(files), len(candidates))
	return files, nil
}

// summarize asks the narrative service for the report. Service failures
// degrade to a placeholder narrative; only cancellation is returned.
func (it *AnalyzeCommand) summarize(
	ctx context.Context,
	log *logger.Entry,
	settings entities.NarrativeSettings,
	analysis entities.RepoAnalysis,
	files []entities.FetchedFile,
) (string, error) {
	prompt := entities.BuildSummaryPrompt(analysis, files)

	generator, err := it.narrativeRegistry.Get(ctx, settings)
	if err != nil {
		log.Warnf("Narrative generator unavailable: %v", err)
		return entities.DegradedNarrative(err), nil
	}

	narrative, err := generator.Generate(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		log.Warnf("Narrative generation failed (%s): %v", generator.Name(), err)
		return entities.DegradedNarrative(err), nil
	}

	return narrative, nil
}
