package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// GitignoreReadError is returned when ignore rules cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }

// fileSystem defines the minimal filesystem interface needed to load the root .gitignore.
type fileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// IgnoreMatcher decides which workspace paths are skipped by the workspace searcher.
// It combines .gitignore rules with configured exclude patterns, all in gitignore syntax.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher loads only the .gitignore at the workspace root (if any) and appends
// the extra exclude patterns. A missing .gitignore is not an error.
func NewIgnoreMatcher(workspaceRoot string, fs fileSystem, extra []string) (*IgnoreMatcher, error) {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	if fs == nil {
		panic("fs is required")
	}
	gitignorePath := filepath.Join(workspaceRoot, ".gitignore")

	var patterns []gitignore.Pattern
	data, err := fs.ReadFile(gitignorePath)
	switch {
	case err == nil:
		patterns = parseLines(string(data), nil)
	case os.IsNotExist(err):
	default:
		return nil, &GitignoreReadError{Path: gitignorePath, Cause: err}
	}

	patterns = append(patterns, excludePatterns(extra)...)
	return newMatcher(patterns), nil
}

// NewNestedIgnoreMatcher reads every .gitignore in the workspace tree through
// go-git's own reader, then appends the extra patterns. Rules from nested files
// are scoped to their directory.
func NewNestedIgnoreMatcher(workspaceRoot string, extra []string) (*IgnoreMatcher, error) {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	patterns, err := gitignore.ReadPatterns(osfs.New(workspaceRoot), nil)
	if err != nil {
		return nil, &GitignoreReadError{Path: workspaceRoot, Cause: err}
	}
	patterns = append(patterns, excludePatterns(extra)...)
	return newMatcher(patterns), nil
}

// NewExcludeMatcher ignores only the given patterns, without reading any .gitignore.
func NewExcludeMatcher(extra []string) *IgnoreMatcher {
	return newMatcher(excludePatterns(extra))
}

func newMatcher(patterns []gitignore.Pattern) *IgnoreMatcher {
	if len(patterns) == 0 {
		return &IgnoreMatcher{}
	}
	return &IgnoreMatcher{matcher: gitignore.NewMatcher(patterns)}
}

func parseLines(content string, domain []string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	return patterns
}

func excludePatterns(extra []string) []gitignore.Pattern {
	return parseLines(strings.Join(extra, "\n"), nil)
}

// ShouldIgnore checks if a workspace-relative path matches any ignore pattern.
// Returns false if no patterns were loaded.
func (m *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	normalized := filepath.ToSlash(path)

	var segments []string
	for _, part := range strings.Split(normalized, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

// NoOpMatcher never ignores anything. The walk searcher uses it when gitignore
// handling is off and no excludes are configured.
type NoOpMatcher struct{}

// ShouldIgnore always returns false for NoOpMatcher.
func (NoOpMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	return false
}
