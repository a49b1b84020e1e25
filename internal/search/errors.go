package search

import (
	"errors"
	"fmt"
)

var (
	ErrNameRequired   = errors.New("file name is required")
	ErrInvalidLimit   = errors.New("limit must be >= 1")
	ErrNameHasSlash   = errors.New("file name must not contain a path separator")
	ErrUnknownBackend = errors.New("unknown search backend")
)

// WalkError is returned when the workspace root itself cannot be walked.
type WalkError struct {
	Root  string
	Cause error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("failed to walk workspace %s: %v", e.Root, e.Cause)
}
func (e *WalkError) Unwrap() error { return e.Cause }
