package search

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/Cyclone1070/counterpart/internal/host"
)

// ignoreMatcher decides whether a workspace-relative path is skipped.
type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// WalkSearcher finds files by walking the workspace tree in lexical order.
type WalkSearcher struct {
	root   string
	ignore ignoreMatcher
}

// NewWalkSearcher creates a searcher rooted at root. root must be absolute.
func NewWalkSearcher(root string, ignore ignoreMatcher) *WalkSearcher {
	if root == "" {
		panic("root is required")
	}
	if ignore == nil {
		panic("ignore is required")
	}
	return &WalkSearcher{root: filepath.Clean(root), ignore: ignore}
}

// Search returns up to q.Limit absolute paths of files named q.Name.
// Ignored directories are not descended into. Subdirectories that cannot be
// read are skipped; failing to read the root is an error.
func (s *WalkSearcher) Search(ctx context.Context, q host.Query) ([]string, error) {
	if err := validate(q); err != nil {
		return nil, err
	}

	var matches []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == s.root {
				return walkErr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == s.root {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		if s.ignore.ShouldIgnore(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || d.Name() != q.Name {
			return nil
		}

		matches = append(matches, path)
		if len(matches) >= q.Limit {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &WalkError{Root: s.root, Cause: err}
	}
	return matches, nil
}
