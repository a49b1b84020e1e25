package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/counterpart/internal/host"
	"github.com/Cyclone1070/counterpart/internal/ui/models"
)

// StatusHeight is the number of rows below the panes.
const StatusHeight = 1

// PaneWidths returns the outer width of each column. Column two gets no width
// until it holds a document.
func PaneWidths(s models.State) [2]int {
	if !s.Split() {
		if s.Panes[1].Doc != nil && s.Panes[0].Doc == nil {
			return [2]int{0, s.Width}
		}
		return [2]int{s.Width, 0}
	}
	left := s.Width / 2
	return [2]int{left, s.Width - left}
}

// PaneHeight returns the outer height of every column.
func PaneHeight(s models.State) int {
	return max(s.Height-StatusHeight, PaneChromeHeight+1)
}

// RenderRoot renders the complete viewer layout.
func RenderRoot(s models.State, st Styles, displayPath func(string) string) string {
	widths := PaneWidths(s)
	height := PaneHeight(s)

	var columns []string
	for i, p := range s.Panes {
		if widths[i] == 0 {
			continue
		}
		title := "empty"
		if p.Doc != nil {
			title = displayPath(p.Doc.Path)
		}
		active := models.PaneIndex(s.Active) == i
		if s.Active == host.ColumnActive {
			active = i == 0
		}
		columns = append(columns, RenderPane(p, title, active, widths[i], height, st))
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	return lipgloss.JoinVertical(lipgloss.Left, panes, RenderStatus(s, st))
}
