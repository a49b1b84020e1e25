package git

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFileSystem is a local mock serving the root .gitignore
type mockFileSystem struct {
	files   map[string][]byte
	readErr error
}

func (m *mockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	content, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return content, nil
}

func TestNewIgnoreMatcher(t *testing.T) {
	workspaceRoot := "/workspace"

	t.Run("root gitignore patterns", func(t *testing.T) {
		fs := &mockFileSystem{files: map[string][]byte{
			"/workspace/.gitignore": []byte("# generated\nbuild/\n*.o\r\n"),
		}}

		matcher, err := NewIgnoreMatcher(workspaceRoot, fs, nil)
		require.NoError(t, err)

		assert.True(t, matcher.ShouldIgnore("build", true))
		assert.True(t, matcher.ShouldIgnore("src/foo.o", false))
		assert.False(t, matcher.ShouldIgnore("src/foo.cpp", false))
		assert.False(t, matcher.ShouldIgnore("build", false), "directory pattern must not match a file")
	})

	t.Run("missing gitignore still applies excludes", func(t *testing.T) {
		matcher, err := NewIgnoreMatcher(workspaceRoot, &mockFileSystem{}, []string{".git", "node_modules"})
		require.NoError(t, err)

		assert.True(t, matcher.ShouldIgnore(".git", true))
		assert.True(t, matcher.ShouldIgnore("web/node_modules", true))
		assert.False(t, matcher.ShouldIgnore("include/foo.h", false))
	})

	t.Run("nothing configured never ignores", func(t *testing.T) {
		matcher, err := NewIgnoreMatcher(workspaceRoot, &mockFileSystem{}, nil)
		require.NoError(t, err)
		assert.False(t, matcher.ShouldIgnore("anything.h", false))
	})

	t.Run("read failure is reported", func(t *testing.T) {
		fs := &mockFileSystem{readErr: os.ErrPermission}

		_, err := NewIgnoreMatcher(workspaceRoot, fs, nil)

		var readErr *GitignoreReadError
		require.True(t, errors.As(err, &readErr))
		assert.Equal(t, "/workspace/.gitignore", readErr.Path)
		assert.ErrorIs(t, err, os.ErrPermission)
	})

	t.Run("negation", func(t *testing.T) {
		fs := &mockFileSystem{files: map[string][]byte{
			"/workspace/.gitignore": []byte("*.h\n!keep.h\n"),
		}}
		matcher, err := NewIgnoreMatcher(workspaceRoot, fs, nil)
		require.NoError(t, err)

		assert.True(t, matcher.ShouldIgnore("drop.h", false))
		assert.False(t, matcher.ShouldIgnore("keep.h", false))
	})
}

func TestNewNestedIgnoreMatcher(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor", "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("out/\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", ".gitignore"), []byte("lib/\n"), 0o644))

	matcher, err := NewNestedIgnoreMatcher(root, []string{"node_modules"})
	require.NoError(t, err)

	assert.True(t, matcher.ShouldIgnore("out", true))
	assert.True(t, matcher.ShouldIgnore("vendor/lib", true))
	assert.False(t, matcher.ShouldIgnore("lib", true), "nested rule is scoped to its directory")
	assert.True(t, matcher.ShouldIgnore("node_modules", true))
}

func TestExcludeMatcherAndNoOp(t *testing.T) {
	matcher := NewExcludeMatcher([]string{"third_party/"})
	assert.True(t, matcher.ShouldIgnore("third_party", true))
	assert.False(t, matcher.ShouldIgnore("src", true))

	var nilMatcher *IgnoreMatcher
	assert.False(t, nilMatcher.ShouldIgnore("x", false))
	assert.False(t, NoOpMatcher{}.ShouldIgnore("x", true))
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c.h"}, splitPath("./a//b/c.h"))
	assert.Empty(t, splitPath(""))
	assert.Empty(t, splitPath("."))
}
