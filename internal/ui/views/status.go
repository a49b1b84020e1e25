package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/counterpart/internal/ui/models"
)

// HelpText lists the viewer key bindings.
const HelpText = "o switch  O split  tab focus  j/k scroll  q quit"

// RenderStatus renders the status bar: status on the left, key help on the right.
func RenderStatus(s models.State, st Styles) string {
	var left string
	switch s.StatusPhase {
	case models.PhaseWorking:
		left = st.StatusWorking.Render(fmt.Sprintf("%s %s", s.Spinner.View(), s.StatusMessage))
	case models.PhaseDone:
		left = st.StatusDone.Render("✔ " + s.StatusMessage)
	case models.PhaseError:
		left = st.StatusError.Render("✘ " + s.StatusMessage)
	case models.PhaseInfo:
		left = st.StatusDefault.Render(s.StatusMessage)
	default:
		left = st.StatusDefault.Render("Ready")
	}

	right := st.Help.Render(HelpText)

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right)
}
