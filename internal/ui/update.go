package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyclone1070/counterpart/internal/editor"
	"github.com/Cyclone1070/counterpart/internal/ui/models"
	"github.com/Cyclone1070/counterpart/internal/ui/services"
	"github.com/Cyclone1070/counterpart/internal/ui/views"
)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	// Dependencies
	styles        views.Styles
	statusTimeout time.Duration
	renderer      services.MarkdownRenderer
	displayPath   func(string) string

	// Handler -> UI
	statusChan <-chan statusMsg
	stateChan  <-chan editor.State

	// UI -> Handler
	commandChan chan<- UICommand

	// Ready signal
	readyChan chan<- struct{}
}

func newBubbleTeaModel(
	statusChan <-chan statusMsg,
	stateChan <-chan editor.State,
	commandChan chan<- UICommand,
	readyChan chan<- struct{},
	styles views.Styles,
	statusTimeout time.Duration,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	displayPath func(string) string,
) BubbleTeaModel {
	if displayPath == nil {
		displayPath = func(p string) string { return p }
	}
	return BubbleTeaModel{
		state: models.State{
			Width:       80,
			Height:      24,
			Panes:       [2]models.Pane{{Viewport: viewport.New(0, 0)}, {Viewport: viewport.New(0, 0)}},
			Spinner:     spinnerFactory(),
			StatusPhase: models.PhaseReady,
		},
		styles:        styles,
		statusTimeout: statusTimeout,
		renderer:      renderer,
		displayPath:   displayPath,
		statusChan:    statusChan,
		stateChan:     stateChan,
		commandChan:   commandChan,
		readyChan:     readyChan,
	}
}

// Internal messages
type statusUpdateMsg statusMsg
type stateUpdateMsg editor.State
type clearStatusMsg struct{ seq int }

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	// Signal that UI is ready
	if m.readyChan != nil {
		close(m.readyChan)
	}

	return tea.Batch(
		m.state.Spinner.Tick,
		listenForStatus(m.statusChan),
		listenForState(m.stateChan),
	)
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.styles, m.displayPath)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case statusUpdateMsg:
		cmd := m.setStatus(msg.phase, msg.message)
		return m, tea.Batch(cmd, listenForStatus(m.statusChan))

	case clearStatusMsg:
		if msg.seq == m.state.StatusSeq {
			m.state.StatusPhase = models.PhaseReady
			m.state.StatusMessage = ""
		}
		return m, nil

	case stateUpdateMsg:
		m.applyState(editor.State(msg))
		return m, listenForState(m.stateChan)
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "o":
		cmd := m.send(UICommand{Type: CommandSwitch}, "Switching...")
		return m, cmd

	case "O":
		cmd := m.send(UICommand{Type: CommandSwitchSecondary}, "Switching into column two...")
		return m, cmd

	case "tab":
		cmd := m.send(UICommand{Type: CommandFocusNext}, "")
		return m, cmd

	case "j", "down":
		m.scroll(1)
	case "k", "up":
		m.scroll(-1)
	case "ctrl+d", "pgdown":
		m.scroll(m.activeViewport().Height / 2)
	case "ctrl+u", "pgup":
		m.scroll(-m.activeViewport().Height / 2)
	case "g", "home":
		m.activeViewport().GotoTop()
	case "G", "end":
		m.activeViewport().GotoBottom()
	}

	return m, nil
}

// send hands cmd to the handler without blocking the UI loop.
func (m *BubbleTeaModel) send(cmd UICommand, working string) tea.Cmd {
	select {
	case m.commandChan <- cmd:
	default:
		return m.setStatus(models.PhaseError, "Busy, try again")
	}
	if working == "" {
		return nil
	}
	return m.setStatus(models.PhaseWorking, working)
}

// setStatus shows a status and, for final phases, schedules it to clear.
func (m *BubbleTeaModel) setStatus(phase, message string) tea.Cmd {
	m.state.StatusSeq++
	m.state.StatusPhase = phase
	m.state.StatusMessage = message

	switch phase {
	case models.PhaseDone, models.PhaseInfo, models.PhaseError:
		if m.statusTimeout > 0 {
			return clearStatusAfter(m.statusTimeout, m.state.StatusSeq)
		}
	}
	return nil
}

func (m *BubbleTeaModel) activeViewport() *viewport.Model {
	return &m.state.Panes[models.PaneIndex(m.state.Active)].Viewport
}

func (m *BubbleTeaModel) scroll(lines int) {
	vp := m.activeViewport()
	vp.SetYOffset(vp.YOffset + lines)
}

// applyState takes a new editor snapshot. Panes whose document changed are
// re-rendered; a pane showing a different file scrolls back to the top.
func (m *BubbleTeaModel) applyState(st editor.State) {
	for i, doc := range st.Columns {
		pane := &m.state.Panes[i]
		prev := pane.Doc
		if sameDocument(prev, doc) {
			continue
		}
		pane.Doc = doc
		pane.RenderedWidth = 0
		if prev == nil || doc == nil || prev.Path != doc.Path {
			pane.Viewport.SetContent("")
			pane.Viewport.GotoTop()
		}
	}
	m.state.Active = st.Active
	m.state.Revision = st.Revision
	m.layout()
}

// layout sizes every viewport for the current window and re-renders content
// whose width changed.
func (m *BubbleTeaModel) layout() {
	widths := views.PaneWidths(m.state)
	height := views.PaneHeight(m.state)

	for i := range m.state.Panes {
		pane := &m.state.Panes[i]
		if widths[i] == 0 {
			continue
		}
		pane.Viewport.Width = max(widths[i]-views.PaneChromeWidth, 1)
		pane.Viewport.Height = max(height-views.PaneChromeHeight, 1)
		if pane.Doc != nil && pane.RenderedWidth != pane.Viewport.Width {
			pane.Viewport.SetContent(views.FormatDocument(*pane, pane.Viewport.Width, m.renderer))
			pane.RenderedWidth = pane.Viewport.Width
		}
	}
}

func sameDocument(a, b *editor.Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Helper commands for listening to channels
func listenForStatus(ch <-chan statusMsg) tea.Cmd {
	return func() tea.Msg {
		return statusUpdateMsg(<-ch)
	}
}

func listenForState(ch <-chan editor.State) tea.Cmd {
	return func() tea.Msg {
		return stateUpdateMsg(<-ch)
	}
}

func clearStatusAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
