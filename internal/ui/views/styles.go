// Package views renders the viewer state with lipgloss.
package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/counterpart/internal/config"
)

// Styles is the viewer palette, built from the UI config.
type Styles struct {
	PaneActive   lipgloss.Style
	PaneInactive lipgloss.Style
	TitleActive  lipgloss.Style
	Title        lipgloss.Style
	Placeholder  lipgloss.Style

	StatusDefault lipgloss.Style
	StatusWorking lipgloss.Style
	StatusDone    lipgloss.Style
	StatusError   lipgloss.Style
	Help          lipgloss.Style
}

// NewStyles builds the palette from cfg colors.
func NewStyles(cfg config.UIConfig) Styles {
	primary := lipgloss.Color(cfg.ColorPrimary)
	muted := lipgloss.Color(cfg.ColorMuted)
	errColor := lipgloss.Color(cfg.ColorError)

	pane := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

	return Styles{
		PaneActive:   pane.BorderForeground(primary),
		PaneInactive: pane.BorderForeground(muted),
		TitleActive:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		Title:        lipgloss.NewStyle().Foreground(muted),
		Placeholder:  lipgloss.NewStyle().Faint(true),

		StatusDefault: lipgloss.NewStyle(),
		StatusWorking: lipgloss.NewStyle().Foreground(primary),
		StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		StatusError:   lipgloss.NewStyle().Foreground(errColor).Bold(true),
		Help:          lipgloss.NewStyle().Foreground(muted),
	}
}
