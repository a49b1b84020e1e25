// Package services renders document content for the viewer panes.
package services

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown to terminal output at a given wrap width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders with a glamour standard style ("dark", "light", "notty", ...).
type GlamourRenderer struct {
	style string
}

// NewGlamourRenderer creates a renderer for the named glamour style.
func NewGlamourRenderer(style string) *GlamourRenderer {
	return &GlamourRenderer{style: style}
}

func (r *GlamourRenderer) Render(content string, width int) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return tr.Render(content)
}

// Language returns the code fence language for a C-family file, or "" if unknown.
func Language(path string) string {
	switch filepath.Ext(path) {
	case ".c":
		return "c"
	case ".h", ".hpp", ".hh", ".hxx", ".cpp", ".cc", ".cxx":
		return "cpp"
	case ".m", ".mm":
		return "objective-c"
	default:
		return ""
	}
}

// CodeBlock wraps source in a fenced block so it is rendered with syntax highlighting.
// The fence is made longer than any backtick run inside the source.
func CodeBlock(path, source string) string {
	fence := "```"
	for strings.Contains(source, fence) {
		fence += "`"
	}
	var b strings.Builder
	b.WriteString(fence)
	b.WriteString(Language(path))
	b.WriteByte('\n')
	b.WriteString(source)
	if !strings.HasSuffix(source, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(fence)
	b.WriteByte('\n')
	return b.String()
}

// RenderSource renders a source file for display, falling back to the plain
// text when the renderer fails.
func RenderSource(path, source string, width int, renderer MarkdownRenderer) string {
	if renderer == nil {
		return source
	}
	out, err := renderer.Render(CodeBlock(path, source), width)
	if err != nil {
		return source
	}
	return out
}
