// Package editor is an in-process editor: loaded documents shown in two view columns.
// It implements the host capabilities the counterpart commands need.
package editor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Cyclone1070/counterpart/internal/host"
	"github.com/Cyclone1070/counterpart/internal/service/content"
)

var (
	ErrEmptyColumn   = errors.New("column has no document")
	ErrInvalidColumn = errors.New("invalid column")
)

// fileReader loads document contents.
type fileReader interface {
	ReadFile(path string) ([]byte, error)
}

type logger interface {
	Debug(module, message string, details map[string]any)
	Info(module, message string, details map[string]any)
}

const logModule = "editor"

// Document is a loaded file.
type Document struct {
	Path    string
	Content string
	Binary  bool
}

// State is a point-in-time copy of the session for rendering.
type State struct {
	Columns  [2]*Document // ColumnOne, ColumnTwo
	Active   host.Column
	Revision uint64
}

// Session holds the documents shown in each column and which column has focus.
// All methods are safe for concurrent use.
type Session struct {
	fs     fileReader
	logger logger

	mu       sync.Mutex
	columns  [2]*Document
	active   host.Column
	revision uint64
}

// NewSession creates an empty session. Column one has focus.
func NewSession(fs fileReader, logger logger) *Session {
	if fs == nil {
		panic("fs is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Session{fs: fs, logger: logger, active: host.ColumnOne}
}

// Open loads path into column one and focuses it.
func (s *Session) Open(ctx context.Context, path string) error {
	return s.Show(ctx, path, host.ColumnOne)
}

// ActivePath returns the path of the document in the focused column.
func (s *Session) ActivePath() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.columns[index(s.active)]
	if doc == nil {
		return "", false
	}
	return doc.Path, true
}

// VisibleViews lists the occupied columns in column order.
func (s *Session) VisibleViews() []host.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	var views []host.View
	for i, doc := range s.columns {
		if doc != nil {
			views = append(views, host.View{Column: column(i), Path: doc.Path})
		}
	}
	return views
}

// Focus moves focus to column. ColumnActive leaves focus where it is.
func (s *Session) Focus(col host.Column) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if col == host.ColumnActive {
		return nil
	}
	if !valid(col) {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, int(col))
	}
	if s.columns[index(col)] == nil {
		return fmt.Errorf("%w: %s", ErrEmptyColumn, col)
	}
	if s.active != col {
		s.active = col
		s.revision++
	}
	return nil
}

// Show reads path from disk, replaces the document in col with it and focuses col.
// The file is always re-read, even if it is already shown.
func (s *Session) Show(ctx context.Context, path string, col host.Column) error {
	if col != host.ColumnActive && !valid(col) {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, int(col))
	}

	doc, err := s.load(ctx, path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if col == host.ColumnActive {
		col = s.active
	}
	s.columns[index(col)] = doc
	s.active = col
	s.revision++

	s.logger.Debug(logModule, "document shown", map[string]any{"path": doc.Path, "column": col.String()})
	return nil
}

// CycleFocus moves focus to the other column if it holds a document.
func (s *Session) CycleFocus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := host.ColumnTwo
	if s.active == host.ColumnTwo {
		next = host.ColumnOne
	}
	if s.columns[index(next)] != nil {
		s.active = next
		s.revision++
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{Active: s.active, Revision: s.revision}
	for i, doc := range s.columns {
		if doc != nil {
			d := *doc
			st.Columns[i] = &d
		}
	}
	return st
}

func (s *Session) load(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = filepath.Clean(path)

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := &Document{Path: path}
	if content.IsBinary(data) {
		doc.Binary = true
	} else {
		doc.Content = string(data)
	}
	s.logger.Info(logModule, "document loaded", map[string]any{"path": path, "bytes": len(data), "binary": doc.Binary})
	return doc, nil
}

func valid(col host.Column) bool {
	return col == host.ColumnOne || col == host.ColumnTwo
}

func index(col host.Column) int {
	if col == host.ColumnTwo {
		return 1
	}
	return 0
}

func column(i int) host.Column {
	if i == 1 {
		return host.ColumnTwo
	}
	return host.ColumnOne
}
