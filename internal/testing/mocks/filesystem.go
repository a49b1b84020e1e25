package mocks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Cyclone1070/counterpart/internal/host"
)

// MockFileSystem is an in-memory filesystem. Directory listings come back in
// the order entries were created, like an unsorted OS listing.
type MockFileSystem struct {
	Mu       sync.RWMutex
	Files    map[string][]byte   // path -> content
	Dirs     map[string][]string // dir path -> child names in creation order
	Errors   map[string]error    // path -> error to return
	OpErrors map[string]error    // operation -> error to return
}

// NewMockFileSystem creates an empty filesystem with a root directory.
func NewMockFileSystem() *MockFileSystem {
	root := string(filepath.Separator)
	return &MockFileSystem{
		Files:    make(map[string][]byte),
		Dirs:     map[string][]string{root: nil},
		Errors:   make(map[string]error),
		OpErrors: make(map[string]error),
	}
}

// SetError sets an error to return for a specific path.
func (f *MockFileSystem) SetError(path string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.Errors[clean(path)] = err
}

// SetOperationError sets an error to return for every call of an operation,
// e.g. "ReadFile" or "ListDirNames".
func (f *MockFileSystem) SetOperationError(operation string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.OpErrors[operation] = err
}

// CreateFile creates or overwrites a file, creating missing parent directories.
// perm is accepted for symmetry with os.WriteFile and ignored.
func (f *MockFileSystem) CreateFile(path string, content []byte, perm os.FileMode) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	path = clean(path)
	f.link(path)
	f.Files[path] = append([]byte(nil), content...)
}

// CreateDir creates a directory and any missing parents.
func (f *MockFileSystem) CreateDir(path string) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	path = clean(path)
	if _, ok := f.Dirs[path]; ok {
		return
	}
	f.link(path)
	f.Dirs[path] = nil
}

// link records path as a child of its parent, creating parents as needed.
// Caller holds the lock.
func (f *MockFileSystem) link(path string) {
	parent := filepath.Dir(path)
	if parent == path {
		return
	}
	if _, ok := f.Dirs[parent]; !ok {
		f.link(parent)
		f.Dirs[parent] = nil
	}
	name := filepath.Base(path)
	for _, existing := range f.Dirs[parent] {
		if existing == name {
			return
		}
	}
	f.Dirs[parent] = append(f.Dirs[parent], name)
}

func (f *MockFileSystem) failure(op, path string) error {
	if err, ok := f.OpErrors[op]; ok {
		return err
	}
	if err, ok := f.Errors[path]; ok {
		return err
	}
	return nil
}

// ReadFile returns a copy of a file's content.
func (f *MockFileSystem) ReadFile(path string) ([]byte, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()
	path = clean(path)
	if err := f.failure("ReadFile", path); err != nil {
		return nil, err
	}
	if _, ok := f.Dirs[path]; ok {
		return nil, &os.PathError{Op: "read", Path: path, Err: fmt.Errorf("is a directory")}
	}
	data, ok := f.Files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// ListDirNames returns the names of a directory's children in creation order.
func (f *MockFileSystem) ListDirNames(path string) ([]string, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()
	path = clean(path)
	if err := f.failure("ListDirNames", path); err != nil {
		return nil, err
	}
	names, ok := f.Dirs[path]
	if !ok {
		if _, isFile := f.Files[path]; isFile {
			return nil, &os.PathError{Op: "readdirent", Path: path, Err: fmt.Errorf("not a directory")}
		}
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return append([]string(nil), names...), nil
}

// Search implements host.WorkspaceSearcher over every file in the filesystem,
// returning hits in sorted path order.
func (f *MockFileSystem) Search(ctx context.Context, q host.Query) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.Mu.RLock()
	defer f.Mu.RUnlock()
	if err, ok := f.OpErrors["Search"]; ok {
		return nil, err
	}

	var matches []string
	for path := range f.Files {
		if filepath.Base(path) == q.Name {
			matches = append(matches, path)
		}
	}
	sort.Strings(matches)
	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches, nil
}

func clean(path string) string {
	return filepath.Clean(filepath.FromSlash(strings.TrimSpace(path)))
}
