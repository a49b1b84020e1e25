// Package models holds the viewer state shared by the update loop and the views.
package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Cyclone1070/counterpart/internal/editor"
	"github.com/Cyclone1070/counterpart/internal/host"
)

// Status phases shown in the status bar.
const (
	PhaseReady   = "ready"
	PhaseWorking = "working"
	PhaseDone    = "done"
	PhaseInfo    = "info"
	PhaseError   = "error"
)

// Pane is one view column.
type Pane struct {
	Doc      *editor.Document
	Viewport viewport.Model
	// RenderedWidth is the width Viewport content was last rendered for.
	RenderedWidth int
}

// State is the complete viewer state.
type State struct {
	Width  int
	Height int

	Panes    [2]Pane // ColumnOne, ColumnTwo
	Active   host.Column
	Revision uint64

	Spinner       spinner.Model
	StatusPhase   string
	StatusMessage string
	// StatusSeq identifies the current status so a stale clear timer is ignored.
	StatusSeq int
}

// PaneIndex maps a column to its index in Panes.
func PaneIndex(col host.Column) int {
	if col == host.ColumnTwo {
		return 1
	}
	return 0
}

// Split reports whether both columns are occupied.
func (s State) Split() bool {
	return s.Panes[0].Doc != nil && s.Panes[1].Doc != nil
}
