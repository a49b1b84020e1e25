package search

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Cyclone1070/counterpart/internal/config"
	"github.com/Cyclone1070/counterpart/internal/host"
	"github.com/Cyclone1070/counterpart/internal/service/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("// "+f+"\n"), 0o644))
	}
}

func TestWalkSearcher_Search(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"include/foo.h",
		"src/foo.cpp",
		"src/nested/deep/foo.h",
		"node_modules/lib/foo.h",
		"build/foo.h",
		"other/foo.h.bak",
		".gitignore",
	)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("build/\n"), 0o644))

	matcher, err := git.NewNestedIgnoreMatcher(root, []string{"node_modules"})
	require.NoError(t, err)
	s := NewWalkSearcher(root, matcher)

	t.Run("FindsFirstInLexicalOrder", func(t *testing.T) {
		got, err := s.Search(context.Background(), host.Query{Name: "foo.h", Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "include", "foo.h")}, got)
	})

	t.Run("SkipsIgnoredDirectories", func(t *testing.T) {
		got, err := s.Search(context.Background(), host.Query{Name: "foo.h", Limit: 10})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(root, "include", "foo.h"),
			filepath.Join(root, "src", "nested", "deep", "foo.h"),
		}, got)
	})

	t.Run("ExactNameOnly", func(t *testing.T) {
		got, err := s.Search(context.Background(), host.Query{Name: "foo.h.bak", Limit: 5})
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = s.Search(context.Background(), host.Query{Name: "FOO.H", Limit: 5})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("NoMatch", func(t *testing.T) {
		got, err := s.Search(context.Background(), host.Query{Name: "bar.hpp", Limit: 1})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("InvalidQuery", func(t *testing.T) {
		_, err := s.Search(context.Background(), host.Query{Name: "", Limit: 1})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = s.Search(context.Background(), host.Query{Name: "foo.h", Limit: 0})
		assert.ErrorIs(t, err, ErrInvalidLimit)

		_, err = s.Search(context.Background(), host.Query{Name: "src/foo.h", Limit: 1})
		assert.ErrorIs(t, err, ErrNameHasSlash)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Search(ctx, host.Query{Name: "foo.h", Limit: 1})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWalkSearcher_MissingRoot(t *testing.T) {
	s := NewWalkSearcher(filepath.Join(t.TempDir(), "gone"), git.NoOpMatcher{})

	_, err := s.Search(context.Background(), host.Query{Name: "foo.h", Limit: 1})
	var walkErr *WalkError
	require.True(t, errors.As(err, &walkErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWalkSearcher_NoIgnoreFindsEverything(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/x.hh", "node_modules/x.hh")

	s := NewWalkSearcher(root, git.NoOpMatcher{})
	got, err := s.Search(context.Background(), host.Query{Name: "x.hh", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestNew(t *testing.T) {
	root := t.TempDir()

	t.Run("Walk", func(t *testing.T) {
		s, err := New(configWith("walk"), root)
		require.NoError(t, err)
		assert.IsType(t, &WalkSearcher{}, s)
	})

	t.Run("Fd", func(t *testing.T) {
		s, err := New(configWith("fd"), root)
		require.NoError(t, err)
		assert.IsType(t, &FdSearcher{}, s)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := New(configWith("locate"), root)
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}

func TestNew_WalkIgnoreRules(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".gitignore", "build/foo.h", "node_modules/foo.h", "src/foo.h")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("build/\n"), 0o644))

	search := func(t *testing.T, cfg config.SearchConfig) []string {
		t.Helper()
		s, err := New(cfg, root)
		require.NoError(t, err)
		got, err := s.Search(context.Background(), host.Query{Name: "foo.h", Limit: 10})
		require.NoError(t, err)
		return got
	}

	t.Run("DefaultSearchesGitignoredDirectories", func(t *testing.T) {
		got := search(t, config.DefaultConfig().Search)
		assert.ElementsMatch(t, []string{
			filepath.Join(root, "build", "foo.h"),
			filepath.Join(root, "src", "foo.h"),
		}, got)
	})

	t.Run("GitignoreRespected", func(t *testing.T) {
		cfg := config.DefaultConfig().Search
		cfg.RespectGitignore = true
		got := search(t, cfg)
		assert.Equal(t, []string{filepath.Join(root, "src", "foo.h")}, got)
	})

	t.Run("NothingFiltered", func(t *testing.T) {
		cfg := config.DefaultConfig().Search
		cfg.Exclude = nil
		s, err := New(cfg, root)
		require.NoError(t, err)
		assert.Equal(t, git.NoOpMatcher{}, s.(*WalkSearcher).ignore)
		assert.Len(t, search(t, cfg), 3)
	})
}

func TestNew_UnreadableSubdirectoryFallsBackToRootGitignore(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions are not enforced on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root can read any directory")
	}
	root := t.TempDir()
	writeTree(t, root, ".gitignore", "build/foo.h", "src/foo.h", "locked/foo.h")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("build/\n"), 0o644))
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	_, err := git.NewNestedIgnoreMatcher(root, nil)
	require.Error(t, err)

	cfg := config.DefaultConfig().Search
	cfg.RespectGitignore = true
	s, err := New(cfg, root)
	require.NoError(t, err)

	got, err := s.Search(context.Background(), host.Query{Name: "foo.h", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "src", "foo.h")}, got)
}
