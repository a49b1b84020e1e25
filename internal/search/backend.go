package search

import (
	"fmt"

	"github.com/Cyclone1070/counterpart/internal/config"
	"github.com/Cyclone1070/counterpart/internal/host"
	"github.com/Cyclone1070/counterpart/internal/service/executor"
	"github.com/Cyclone1070/counterpart/internal/service/fs"
	"github.com/Cyclone1070/counterpart/internal/service/git"
	"github.com/Cyclone1070/counterpart/internal/service/path"
)

// New builds the workspace searcher selected by cfg.Backend for the canonical root.
func New(cfg config.SearchConfig, root string) (host.WorkspaceSearcher, error) {
	switch cfg.Backend {
	case config.BackendWalk:
		ignore, err := newIgnoreMatcher(cfg, root)
		if err != nil {
			return nil, err
		}
		return NewWalkSearcher(root, ignore), nil

	case config.BackendFd:
		exec := executor.NewOSCommandExecutor(cfg.MaxCommandOutputSize)
		return NewFdSearcher(cfg.FdBinary, exec, path.NewResolver(root), cfg.RespectGitignore, cfg.Exclude), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// newIgnoreMatcher picks the walk filter. With gitignore handling on, every
// .gitignore in the tree is read; if some directory cannot be read, only the
// root .gitignore applies.
func newIgnoreMatcher(cfg config.SearchConfig, root string) (ignoreMatcher, error) {
	switch {
	case cfg.RespectGitignore:
		matcher, err := git.NewNestedIgnoreMatcher(root, cfg.Exclude)
		if err == nil {
			return matcher, nil
		}
		return git.NewIgnoreMatcher(root, fs.NewOSFileSystem(), cfg.Exclude)
	case len(cfg.Exclude) > 0:
		return git.NewExcludeMatcher(cfg.Exclude), nil
	default:
		return git.NoOpMatcher{}, nil
	}
}
