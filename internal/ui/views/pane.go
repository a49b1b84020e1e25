package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/counterpart/internal/ui/models"
	"github.com/Cyclone1070/counterpart/internal/ui/services"
)

// PaneChrome is the number of columns and rows a pane spends on border and title.
const (
	PaneChromeWidth  = 2
	PaneChromeHeight = 3
)

// RenderPane renders one column: a title line over the viewport, inside a border.
func RenderPane(p models.Pane, title string, active bool, width, height int, st Styles) string {
	frame := st.PaneInactive
	titleStyle := st.Title
	if active {
		frame = st.PaneActive
		titleStyle = st.TitleActive
	}

	innerWidth := max(width-PaneChromeWidth, 1)
	innerHeight := max(height-PaneChromeHeight, 1)

	var body string
	switch {
	case p.Doc == nil:
		body = st.Placeholder.Render("No file")
	case p.Doc.Binary:
		body = st.Placeholder.Render("Binary file, not shown")
	default:
		body = p.Viewport.View()
	}

	head := titleStyle.MaxWidth(innerWidth).Render(title)
	content := lipgloss.NewStyle().Width(innerWidth).Height(innerHeight).MaxHeight(innerHeight).Render(body)
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, head, content))
}

// FormatDocument renders pane content for a viewport of the given width.
func FormatDocument(p models.Pane, width int, renderer services.MarkdownRenderer) string {
	if p.Doc == nil || p.Doc.Binary {
		return ""
	}
	return services.RenderSource(p.Doc.Path, p.Doc.Content, width, renderer)
}
