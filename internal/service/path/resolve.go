package path

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrOutsideWorkspace    = errors.New("path is outside workspace root")
	ErrWorkspaceRootNotSet = errors.New("workspace root not set")
	ErrNotADirectory       = errors.New("not a directory")
)

// WorkspaceRootError is returned when the workspace root cannot be used.
type WorkspaceRootError struct {
	Root  string
	Cause error
}

func (e *WorkspaceRootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}
func (e *WorkspaceRootError) Unwrap() error { return e.Cause }

// Resolver provides path resolution within a workspace boundary.
type Resolver struct {
	workspaceRoot string
}

// NewResolver creates a new path resolver for the given workspace.
// The root is expected to be canonical (see CanonicaliseRoot).
func NewResolver(workspaceRoot string) *Resolver {
	return &Resolver{
		workspaceRoot: workspaceRoot,
	}
}

// WorkspaceRoot returns the root the resolver was created with.
func (r *Resolver) WorkspaceRoot() string {
	return r.workspaceRoot
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Normalize turns a path reported by a search backend into a clean absolute path
// with native separators. Relative paths are taken relative to the workspace root.
// Unlike Abs, it does not enforce the workspace boundary.
func (r *Resolver) Normalize(path string) string {
	p := filepath.FromSlash(path)
	if !filepath.IsAbs(p) && r.workspaceRoot != "" {
		p = filepath.Join(r.workspaceRoot, p)
	}
	return filepath.Clean(p)
}

// Abs resolves any path to absolute and validates it is within the workspace boundary.
// It cleans the path and ensures it does not escape the workspace root.
func (r *Resolver) Abs(path string) (string, error) {
	if r.workspaceRoot == "" {
		return "", ErrWorkspaceRootNotSet
	}

	var abs string
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Clean(filepath.Join(r.workspaceRoot, path))
	}

	// Boundary check: must be the root itself or a child of the root
	if !strings.HasPrefix(abs, r.workspaceRoot+string(filepath.Separator)) && abs != r.workspaceRoot {
		return "", ErrOutsideWorkspace
	}

	return abs, nil
}

// Rel resolves any path to relative to the workspace root and validates it is within the boundary.
func (r *Resolver) Rel(path string) (string, error) {
	abs, err := r.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(r.workspaceRoot, abs)
	if err != nil {
		return "", ErrOutsideWorkspace
	}

	if rel == "." {
		return "", nil
	}

	return filepath.ToSlash(rel), nil
}

// Display returns the workspace-relative form of path when it lies inside the
// workspace, and the path unchanged otherwise.
func (r *Resolver) Display(path string) string {
	rel, err := r.Rel(path)
	if err != nil || rel == "" {
		return path
	}
	return rel
}
