package counterpart

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Cyclone1070/counterpart/internal/host"
)

// PaneMode selects where a resolved file is shown.
type PaneMode int

const (
	// PaneReuse focuses a visible view of the file, or opens it in the active column.
	PaneReuse PaneMode = iota
	// PaneSecondary always opens the file in column two.
	PaneSecondary
)

func (m PaneMode) String() string {
	switch m {
	case PaneReuse:
		return "reuse"
	case PaneSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("PaneMode(%d)", int(m))
	}
}

// Presenter shows resolved files in the host window.
type Presenter struct {
	window host.Window
	logger logger
}

// NewPresenter creates a Presenter over window.
func NewPresenter(window host.Window, logger logger) *Presenter {
	if window == nil {
		panic("window is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Presenter{window: window, logger: logger}
}

// Present shows path according to mode. Load failures are *DocumentLoadError.
func (p *Presenter) Present(ctx context.Context, path string, mode PaneMode) error {
	switch mode {
	case PaneReuse:
		for _, view := range p.window.VisibleViews() {
			if filepath.Clean(view.Path) == filepath.Clean(path) {
				p.logger.Info(logModule, "focusing open view", map[string]any{"path": path, "column": view.Column.String()})
				return p.window.Focus(view.Column)
			}
		}
		return p.open(ctx, path, host.ColumnActive)
	case PaneSecondary:
		return p.open(ctx, path, host.ColumnTwo)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownPaneMode, int(mode))
	}
}

func (p *Presenter) open(ctx context.Context, path string, column host.Column) error {
	p.logger.Info(logModule, "opening", map[string]any{"path": path, "column": column.String()})
	if err := p.window.Show(ctx, path, column); err != nil {
		return &DocumentLoadError{Path: path, Cause: err}
	}
	p.logger.Info(logModule, "opened", map[string]any{"path": path, "column": column.String()})
	return nil
}
