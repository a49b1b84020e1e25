package counterpart

import (
	"errors"
	"fmt"
)

var ErrUnknownPaneMode = errors.New("unknown pane mode")

// DirectoryReadError is returned when the active file's directory cannot be listed.
type DirectoryReadError struct {
	Dir   string
	Cause error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("failed to read directory %s: %v", e.Dir, e.Cause)
}
func (e *DirectoryReadError) Unwrap() error { return e.Cause }

// WorkspaceSearchError is returned when the workspace search for one extension fails.
type WorkspaceSearchError struct {
	Ext   string
	Cause error
}

func (e *WorkspaceSearchError) Error() string {
	return fmt.Sprintf("workspace search for %s failed: %v", e.Ext, e.Cause)
}
func (e *WorkspaceSearchError) Unwrap() error { return e.Cause }

// DocumentLoadError is returned when a resolved file cannot be opened.
type DocumentLoadError struct {
	Path  string
	Cause error
}

func (e *DocumentLoadError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Cause)
}
func (e *DocumentLoadError) Unwrap() error { return e.Cause }
