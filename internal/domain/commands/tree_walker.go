package commands

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	"github.com/rios0rios0/repoanalyzer/internal/domain/repositories"
)

// treeWalker expands a repository into a flat list of entries. It keeps an
// explicit frontier instead of recursing, lists the directories of one level
// concurrently and merges the listings back into pre-order.
type treeWalker struct {
	content     repositories.ContentRepository
	concurrency int
	maxDepth    int
}

type walkNode struct {
	path  string
	depth int
}

func newTreeWalker(content repositories.ContentRepository, settings entities.ContentSettings) *treeWalker {
	concurrency := settings.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	maxDepth := settings.MaxDepth
	if maxDepth < 1 {
		maxDepth = entities.DefaultMaxDepth
	}
	return &treeWalker{content: content, concurrency: concurrency, maxDepth: maxDepth}
}

// Walk lists the whole tree of ref. The first failed listing cancels the
// in-flight siblings and is returned; no partial tree is ever returned.
func (w *treeWalker) Walk(
	ctx context.Context,
	ref entities.RepositoryReference,
) ([]entities.ContentEntry, error) {
	children := make(map[string][]entities.ContentEntry)
	frontier := []walkNode{{path: "", depth: 0}}

	for len(frontier) > 0 {
		listings, err := w.listLevel(ctx, ref, frontier)
		if err != nil {
			return nil, err
		}

		var next []walkNode
		for i, node := range frontier {
			children[node.path] = listings[i]
			for _, entry := range listings[i] {
				if !entry.IsDir() {
					continue
				}
				if _, seen := children[entry.Path]; seen {
					continue
				}
				if node.depth+1 > w.maxDepth {
					return nil, &entities.TreeFetchError{
						Path: entry.Path,
						Err:  fmt.Errorf("maximum directory depth %d exceeded", w.maxDepth),
					}
				}
				// reserve the path so a malformed listing cannot queue it twice
				children[entry.Path] = nil
				next = append(next, walkNode{path: entry.Path, depth: node.depth + 1})
			}
		}
		frontier = next
	}

	return flattenPreOrder(children), nil
}

// listLevel lists every directory of the frontier, bounded by the worker
// count. Listings are index-aligned with the frontier.
func (w *treeWalker) listLevel(
	ctx context.Context,
	ref entities.RepositoryReference,
	frontier []walkNode,
) ([][]entities.ContentEntry, error) {
	listings := make([][]entities.ContentEntry, len(frontier))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(w.concurrency)
	for i, node := range frontier {
		group.Go(func() error {
			entries, err := w.content.ListDirectory(groupCtx, ref, node.path)
			if err != nil {
				return err
			}
			listings[i] = entries
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return listings, nil
}

// flattenPreOrder emits each directory entry followed by its expanded
// contents, then the next sibling.
func flattenPreOrder(children map[string][]entities.ContentEntry) []entities.ContentEntry {
	var out []entities.ContentEntry
	expanded := map[string]bool{"": true}

	stack := pushReversed(nil, children[""])
	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, entry)

		if entry.IsDir() && !expanded[entry.Path] {
			expanded[entry.Path] = true
			stack = pushReversed(stack, children[entry.Path])
		}
	}

	return out
}

func pushReversed(stack, entries []entities.ContentEntry) []entities.ContentEntry {
	for i := len(entries) - 1; i >= 0; i-- {
		stack = append(stack, entries[i])
	}
	return stack
}
