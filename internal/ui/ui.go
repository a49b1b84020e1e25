package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyclone1070/counterpart/internal/config"
	"github.com/Cyclone1070/counterpart/internal/editor"
	"github.com/Cyclone1070/counterpart/internal/ui/services"
	"github.com/Cyclone1070/counterpart/internal/ui/views"
)

// UI implements Viewer using Bubble Tea
type UI struct {
	program *tea.Program

	// Handler -> UI
	statusChan chan statusMsg
	stateChan  chan editor.State

	// UI -> Handler
	commandChan chan UICommand

	readyChan chan struct{}
}

type statusMsg struct {
	phase   string
	message string
}

// UIChannels holds the channels for UI communication
type UIChannels struct {
	StatusChan  chan statusMsg
	StateChan   chan editor.State
	CommandChan chan UICommand
	ReadyChan   chan struct{} // Signals when UI is ready to accept updates
}

// NewUIChannels creates a new UIChannels struct with default buffers.
// StateChan holds one pending state; newer states replace it.
func NewUIChannels() *UIChannels {
	return &UIChannels{
		StatusChan:  make(chan statusMsg, 10),
		StateChan:   make(chan editor.State, 1),
		CommandChan: make(chan UICommand, 10),
		ReadyChan:   make(chan struct{}),
	}
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// NewUI creates a new Bubble Tea viewer. displayPath turns absolute document
// paths into pane titles.
func NewUI(
	channels *UIChannels,
	cfg config.UIConfig,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	displayPath func(string) string,
) *UI {
	ui := &UI{
		statusChan:  channels.StatusChan,
		stateChan:   channels.StateChan,
		commandChan: channels.CommandChan,
		readyChan:   channels.ReadyChan,
	}

	model := newBubbleTeaModel(
		ui.statusChan,
		ui.stateChan,
		ui.commandChan,
		ui.readyChan,
		views.NewStyles(cfg),
		time.Duration(cfg.StatusTimeoutMs)*time.Millisecond,
		renderer,
		spinnerFactory,
		displayPath,
	)

	ui.program = tea.NewProgram(model, tea.WithAltScreen())

	return ui
}

// Start starts the UI program
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}

// Ready returns a channel that is closed when the UI is ready to accept updates
func (u *UI) Ready() <-chan struct{} {
	return u.readyChan
}

// Commands returns the command channel
func (u *UI) Commands() <-chan UICommand {
	return u.commandChan
}

// WriteStatus updates the status bar
func (u *UI) WriteStatus(phase string, message string) {
	select {
	case u.statusChan <- statusMsg{phase: phase, message: message}:
	default:
		// Drop if channel is full
	}
}

// WriteState replaces any state the UI has not picked up yet.
func (u *UI) WriteState(state editor.State) {
	for {
		select {
		case u.stateChan <- state:
			return
		default:
			select {
			case <-u.stateChan:
			default:
			}
		}
	}
}
