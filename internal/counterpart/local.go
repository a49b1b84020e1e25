package counterpart

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Cyclone1070/counterpart/internal/host"
)

// LocalMatcher looks for a counterpart next to the active file.
type LocalMatcher struct {
	lister host.DirectoryLister
}

// NewLocalMatcher creates a LocalMatcher over lister.
func NewLocalMatcher(lister host.DirectoryLister) *LocalMatcher {
	if lister == nil {
		panic("lister is required")
	}
	return &LocalMatcher{lister: lister}
}

// FindLocal returns the first entry of dir, in listing order, named base plus
// one of candidates. An unreadable dir is a *DirectoryReadError.
func (m *LocalMatcher) FindLocal(dir, base string, candidates CandidateSet) (MatchResult, error) {
	if len(candidates) == 0 {
		return NotFound, nil
	}

	names, err := m.lister.ListDirNames(dir)
	if err != nil {
		return NotFound, &DirectoryReadError{Dir: dir, Cause: err}
	}

	suffix := suffixPattern(candidates)
	for _, name := range names {
		if !suffix.MatchString(name) {
			continue
		}
		for _, ext := range candidates {
			if name == base+ext {
				return MatchResult{Path: filepath.Join(dir, name), Found: true, Source: SourceLocal}, nil
			}
		}
	}
	return NotFound, nil
}

// suffixPattern builds an anchored alternation such as `(\.h|\.hpp)$`.
func suffixPattern(candidates CandidateSet) *regexp.Regexp {
	quoted := make([]string, len(candidates))
	for i, ext := range candidates {
		quoted[i] = regexp.QuoteMeta(ext)
	}
	return regexp.MustCompile("(" + strings.Join(quoted, "|") + ")$")
}
