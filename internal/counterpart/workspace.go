package counterpart

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Cyclone1070/counterpart/internal/host"
)

// pathNormalizer cleans search hits and anchors relative ones at the workspace root.
type pathNormalizer interface {
	Normalize(path string) string
}

// WorkspaceSearcher looks for a counterpart anywhere in the workspace.
type WorkspaceSearcher struct {
	searcher host.WorkspaceSearcher
	paths    pathNormalizer
	limit    int
}

// NewWorkspaceSearcher creates a WorkspaceSearcher that asks searcher for at most
// limit hits per extension.
func NewWorkspaceSearcher(searcher host.WorkspaceSearcher, paths pathNormalizer, limit int) *WorkspaceSearcher {
	if searcher == nil {
		panic("searcher is required")
	}
	if paths == nil {
		panic("paths is required")
	}
	if limit < 1 {
		limit = 1
	}
	return &WorkspaceSearcher{searcher: searcher, paths: paths, limit: limit}
}

// FindInWorkspace searches for base plus each candidate extension concurrently.
// All searches finish before the results are read, and the first extension in
// candidate order with a hit wins, whichever search completed first.
// A failed search cancels the others and is returned as *WorkspaceSearchError.
func (w *WorkspaceSearcher) FindInWorkspace(ctx context.Context, base string, candidates CandidateSet) (MatchResult, error) {
	results := make([][]string, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i, ext := range candidates {
		i, ext := i, ext
		g.Go(func() error {
			paths, err := w.searcher.Search(gctx, host.Query{Name: base + ext, Limit: w.limit})
			if err != nil {
				return &WorkspaceSearchError{Ext: ext, Cause: err}
			}
			results[i] = paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return NotFound, err
	}

	for _, paths := range results {
		if len(paths) > 0 {
			return MatchResult{Path: w.paths.Normalize(paths[0]), Found: true, Source: SourceWorkspace}, nil
		}
	}
	return NotFound, nil
}
