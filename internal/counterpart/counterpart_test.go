package counterpart

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Cyclone1070/counterpart/internal/host"
	"github.com/Cyclone1070/counterpart/internal/logging"
	"github.com/Cyclone1070/counterpart/internal/service/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister serves directory listings from memory, in the given order.
type fakeLister struct {
	dirs  map[string][]string
	err   error
	calls int
}

func (l *fakeLister) ListDirNames(dir string) ([]string, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	names, ok := l.dirs[dir]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: dir, Err: os.ErrNotExist}
	}
	return names, nil
}

// fakeSearcher answers queries by file name. hook, when set, runs before the answer.
type fakeSearcher struct {
	mu      sync.Mutex
	hits    map[string][]string
	errs    map[string]error
	hook    func(ctx context.Context, name string) error
	queries []host.Query
}

func (s *fakeSearcher) Search(ctx context.Context, q host.Query) ([]string, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()

	if s.hook != nil {
		if err := s.hook(ctx, q.Name); err != nil {
			return nil, err
		}
	}
	if err := s.errs[q.Name]; err != nil {
		return nil, err
	}
	return s.hits[q.Name], nil
}

func (s *fakeSearcher) queryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

var root = filepath.FromSlash("/ws")

func newTestResolver(lister *fakeLister, searcher *fakeSearcher) *Resolver {
	return NewResolver(
		NewLocalMatcher(lister),
		NewWorkspaceSearcher(searcher, path.NewResolver(root), 1),
		logging.NewNop(),
	)
}

func TestClassify(t *testing.T) {
	for _, ext := range HeaderExtensions() {
		assert.Equal(t, SourceExtensions(), Classify(ext), ext)
	}
	for _, ext := range []string{".cpp", ".c", ".cc", ".cxx", ".m", ".mm", ".txt", ".H", ".HPP", ".go", "."} {
		assert.Equal(t, HeaderExtensions(), Classify(ext), ext)
	}
}

func TestCandidateSets(t *testing.T) {
	t.Run("Disjoint", func(t *testing.T) {
		for _, ext := range SourceExtensions() {
			assert.False(t, IsHeader(ext), ext)
		}
	})

	t.Run("Order", func(t *testing.T) {
		assert.Equal(t, CandidateSet{".h", ".hpp", ".hh", ".hxx"}, HeaderExtensions())
		assert.Equal(t, CandidateSet{".cpp", ".c", ".cc", ".cxx", ".m", ".mm"}, SourceExtensions())
	})

	t.Run("CopiesCannotMutate", func(t *testing.T) {
		set := Classify(".c")
		set[0] = ".zzz"
		assert.Equal(t, ".h", HeaderExtensions()[0])
	})
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		path string
		want ActiveFile
	}{
		{"/src/foo.cpp", ActiveFile{Dir: "/src", Base: "foo", Ext: ".cpp"}},
		{"/src/foo.bar.h", ActiveFile{Dir: "/src", Base: "foo.bar", Ext: ".h"}},
		{"/src/Makefile", ActiveFile{Dir: "/src", Base: "Makefile", Ext: ""}},
		{"/src/.h", ActiveFile{Dir: "/src", Base: ".h", Ext: ""}},
		{"/src/.bashrc", ActiveFile{Dir: "/src", Base: ".bashrc", Ext: ""}},
		{"/src/..h", ActiveFile{Dir: "/src", Base: ".", Ext: ".h"}},
		{"/src/a.", ActiveFile{Dir: "/src", Base: "a", Ext: "."}},
		{"/src/h.h", ActiveFile{Dir: "/src", Base: "h", Ext: ".h"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			want := tt.want
			want.Dir = filepath.FromSlash(want.Dir)
			assert.Equal(t, want, Describe(filepath.FromSlash(tt.path)))
		})
	}
}

func TestFindLocal(t *testing.T) {
	dir := filepath.FromSlash("/ws/src")

	t.Run("HeaderFindsSource", func(t *testing.T) {
		lister := &fakeLister{dirs: map[string][]string{dir: {"README", "foo.h", "foo.cpp"}}}
		got, err := NewLocalMatcher(lister).FindLocal(dir, "foo", SourceExtensions())
		require.NoError(t, err)
		assert.Equal(t, MatchResult{Path: filepath.Join(dir, "foo.cpp"), Found: true, Source: SourceLocal}, got)
	})

	t.Run("ListingOrderWins", func(t *testing.T) {
		lister := &fakeLister{dirs: map[string][]string{dir: {"foo.hh", "foo.h", "foo.hpp"}}}
		got, err := NewLocalMatcher(lister).FindLocal(dir, "foo", HeaderExtensions())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "foo.hh"), got.Path)
	})

	t.Run("ExactNameOnly", func(t *testing.T) {
		lister := &fakeLister{dirs: map[string][]string{dir: {"myfoo.h", "foo_test.h", "foo.h.in", "FOO.h", "foo.H"}}}
		got, err := NewLocalMatcher(lister).FindLocal(dir, "foo", HeaderExtensions())
		require.NoError(t, err)
		assert.Equal(t, NotFound, got)
	})

	t.Run("DotIsLiteral", func(t *testing.T) {
		lister := &fakeLister{dirs: map[string][]string{dir: {"fooxh"}}}
		got, err := NewLocalMatcher(lister).FindLocal(dir, "foo", HeaderExtensions())
		require.NoError(t, err)
		assert.False(t, got.Found)
	})

	t.Run("EmptyDirectory", func(t *testing.T) {
		lister := &fakeLister{dirs: map[string][]string{dir: nil}}
		got, err := NewLocalMatcher(lister).FindLocal(dir, "foo", HeaderExtensions())
		require.NoError(t, err)
		assert.Equal(t, NotFound, got)
	})

	t.Run("UnreadableDirectory", func(t *testing.T) {
		lister := &fakeLister{err: os.ErrPermission}
		_, err := NewLocalMatcher(lister).FindLocal(dir, "foo", HeaderExtensions())

		var readErr *DirectoryReadError
		require.True(t, errors.As(err, &readErr))
		assert.Equal(t, dir, readErr.Dir)
		assert.ErrorIs(t, err, os.ErrPermission)
	})
}

func TestSuffixPattern(t *testing.T) {
	re := suffixPattern(CandidateSet{".h", ".c++"})
	assert.Equal(t, `(\.h|\.c\+\+)$`, re.String())
	assert.True(t, re.MatchString("a.c++"))
	assert.False(t, re.MatchString("a.h.txt"))
}

func TestFindInWorkspace(t *testing.T) {
	t.Run("SingleMatchNormalised", func(t *testing.T) {
		searcher := &fakeSearcher{hits: map[string][]string{"foo.hpp": {"include/sub/../foo.hpp"}}}
		ws := NewWorkspaceSearcher(searcher, path.NewResolver(root), 1)

		got, err := ws.FindInWorkspace(context.Background(), "foo", HeaderExtensions())
		require.NoError(t, err)
		assert.Equal(t, MatchResult{Path: filepath.Join(root, "include", "foo.hpp"), Found: true, Source: SourceWorkspace}, got)
		assert.Equal(t, 4, searcher.queryCount())
	})

	t.Run("QueriesCarryPatternAndLimit", func(t *testing.T) {
		searcher := &fakeSearcher{}
		ws := NewWorkspaceSearcher(searcher, path.NewResolver(root), 1)

		_, err := ws.FindInWorkspace(context.Background(), "foo", HeaderExtensions())
		require.NoError(t, err)

		var patterns []string
		for _, q := range searcher.queries {
			assert.Equal(t, 1, q.Limit)
			patterns = append(patterns, q.Pattern())
		}
		assert.ElementsMatch(t, []string{"**/foo.h", "**/foo.hpp", "**/foo.hh", "**/foo.hxx"}, patterns)
	})

	t.Run("CandidateOrderBeatsCompletionOrder", func(t *testing.T) {
		ccDone := make(chan struct{})
		var mu sync.Mutex
		var completed []string

		searcher := &fakeSearcher{
			hits: map[string][]string{
				"foo.c":  {"/ws/a/foo.c"},
				"foo.cc": {"/ws/b/foo.cc"},
			},
			hook: func(ctx context.Context, name string) error {
				switch name {
				case "foo.c":
					<-ccDone
				case "foo.cc":
					defer close(ccDone)
				}
				mu.Lock()
				completed = append(completed, name)
				mu.Unlock()
				return nil
			},
		}
		ws := NewWorkspaceSearcher(searcher, path.NewResolver(root), 1)

		got, err := ws.FindInWorkspace(context.Background(), "foo", SourceExtensions())
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash("/ws/a/foo.c"), got.Path)

		ccIndex, cIndex := -1, -1
		for i, name := range completed {
			switch name {
			case "foo.cc":
				ccIndex = i
			case "foo.c":
				cIndex = i
			}
		}
		assert.Less(t, ccIndex, cIndex, "foo.cc must have finished first")
	})

	t.Run("WaitsForAllBeforeDeciding", func(t *testing.T) {
		exts := HeaderExtensions()
		release := make(chan struct{})
		started := make(chan string, len(exts))
		searcher := &fakeSearcher{
			hits: map[string][]string{"foo.h": {"/ws/foo.h"}},
			hook: func(ctx context.Context, name string) error {
				started <- name
				if name == "foo.hxx" {
					<-release
				}
				return nil
			},
		}
		ws := NewWorkspaceSearcher(searcher, path.NewResolver(root), 1)

		done := make(chan MatchResult, 1)
		go func() {
			got, _ := ws.FindInWorkspace(context.Background(), "foo", exts)
			done <- got
		}()

		for range exts {
			select {
			case <-started:
			case <-time.After(5 * time.Second):
				t.Fatal("searches were not all started")
			}
		}
		// foo.h is already answered, but foo.hxx is still running.
		assert.Never(t, func() bool { return len(done) > 0 }, 50*time.Millisecond, 5*time.Millisecond,
			"returned before every search finished")

		close(release)
		select {
		case got := <-done:
			assert.Equal(t, filepath.FromSlash("/ws/foo.h"), got.Path)
		case <-time.After(5 * time.Second):
			t.Fatal("FindInWorkspace did not return")
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		ws := NewWorkspaceSearcher(&fakeSearcher{}, path.NewResolver(root), 1)
		got, err := ws.FindInWorkspace(context.Background(), "foo", HeaderExtensions())
		require.NoError(t, err)
		assert.Equal(t, NotFound, got)
	})

	t.Run("SearchFailureCancelsSiblings", func(t *testing.T) {
		boom := errors.New("index unavailable")
		searcher := &fakeSearcher{
			errs: map[string]error{"foo.hpp": boom},
			hook: func(ctx context.Context, name string) error {
				if name == "foo.hpp" {
					return nil
				}
				<-ctx.Done()
				return ctx.Err()
			},
		}
		ws := NewWorkspaceSearcher(searcher, path.NewResolver(root), 1)

		got, err := ws.FindInWorkspace(context.Background(), "foo", HeaderExtensions())
		assert.Equal(t, NotFound, got)

		var searchErr *WorkspaceSearchError
		require.True(t, errors.As(err, &searchErr))
		assert.Equal(t, ".hpp", searchErr.Ext)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 4, searcher.queryCount())
	})
}

func TestResolve(t *testing.T) {
	src := filepath.FromSlash("/ws/src")
	inc := filepath.FromSlash("/ws/include")

	t.Run("LocalMatchSkipsWorkspace", func(t *testing.T) {
		lister := &fakeLister{dirs: map[string][]string{src: {"foo.cpp", "foo.h"}}}
		searcher := &fakeSearcher{}
		r := newTestResolver(lister, searcher)

		got, err := r.Resolve(context.Background(), filepath.Join(src, "foo.h"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(src, "foo.cpp"), got.Path)
		assert.Equal(t, 0, searcher.queryCount())

		got, err = r.Resolve(context.Background(), filepath.Join(src, "foo.cpp"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(src, "foo.h"), got.Path)
		assert.Equal(t, 0, searcher.queryCount())
	})

	t.Run("WorkspaceFallback", func(t *testing.T) {
		lister := &fakeLister{dirs: map[string][]string{src: {"foo.cpp"}}}
		searcher := &fakeSearcher{hits: map[string][]string{"foo.h": {filepath.Join(inc, "foo.h")}}}
		r := newTestResolver(lister, searcher)

		got, err := r.Resolve(context.Background(), filepath.Join(src, "foo.cpp"))
		require.NoError(t, err)
		assert.Equal(t, MatchResult{Path: filepath.Join(inc, "foo.h"), Found: true, Source: SourceWorkspace}, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		lister := &fakeLister{dirs: map[string][]string{src: {"foo.cpp"}}}
		r := newTestResolver(lister, &fakeSearcher{})

		got, err := r.Resolve(context.Background(), filepath.Join(src, "foo.cpp"))
		require.NoError(t, err)
		assert.Equal(t, NotFound, got)
	})

	t.Run("NoExtensionIsNoOp", func(t *testing.T) {
		lister := &fakeLister{}
		searcher := &fakeSearcher{}
		r := newTestResolver(lister, searcher)

		for _, name := range []string{"Makefile", ".h", ".clang-format"} {
			got, err := r.Resolve(context.Background(), filepath.Join(src, name))
			require.NoError(t, err)
			assert.Equal(t, NotFound, got, name)
		}
		assert.Equal(t, 0, lister.calls)
		assert.Equal(t, 0, searcher.queryCount())
	})

	t.Run("Idempotent", func(t *testing.T) {
		lister := &fakeLister{dirs: map[string][]string{src: {"foo.c"}}}
		searcher := &fakeSearcher{hits: map[string][]string{"foo.hh": {filepath.Join(inc, "foo.hh")}}}
		r := newTestResolver(lister, searcher)

		first, err := r.Resolve(context.Background(), filepath.Join(src, "foo.c"))
		require.NoError(t, err)
		second, err := r.Resolve(context.Background(), filepath.Join(src, "foo.c"))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("DirectoryErrorPropagates", func(t *testing.T) {
		searcher := &fakeSearcher{}
		r := newTestResolver(&fakeLister{err: os.ErrPermission}, searcher)

		_, err := r.Resolve(context.Background(), filepath.Join(src, "foo.c"))
		var readErr *DirectoryReadError
		assert.True(t, errors.As(err, &readErr))
		assert.Equal(t, 0, searcher.queryCount())
	})

	t.Run("WorkspaceErrorPropagates", func(t *testing.T) {
		lister := &fakeLister{dirs: map[string][]string{src: nil}}
		searcher := &fakeSearcher{errs: map[string]error{"foo.h": errors.New("boom")}}
		r := newTestResolver(lister, searcher)

		_, err := r.Resolve(context.Background(), filepath.Join(src, "foo.c"))
		var searchErr *WorkspaceSearchError
		assert.True(t, errors.As(err, &searchErr))
	})
}
