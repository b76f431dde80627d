package commands

import (
	"context"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	"github.com/rios0rios0/repoanalyzer/internal/domain/repositories"
)

// WalkTree exposes the tree walker for testing.
func WalkTree(
	ctx context.Context,
	content repositories.ContentRepository,
	settings entities.ContentSettings,
	ref entities.RepositoryReference,
) ([]entities.ContentEntry, error) {
	return newTreeWalker(content, settings).Walk(ctx, ref)
}
