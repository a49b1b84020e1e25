package ui

import "github.com/Cyclone1070/counterpart/internal/editor"

// Command types sent from the viewer to the command handler.
const (
	CommandSwitch          = "switch"
	CommandSwitchSecondary = "switch_secondary"
	CommandFocusNext       = "focus_next"
)

// UICommand is a user request the viewer cannot fulfil by itself.
type UICommand struct {
	Type string
	Args map[string]string
}

// Viewer is the terminal front end. The command handler reads Commands and
// pushes results back through WriteStatus and WriteState.
type Viewer interface {
	// Start runs the viewer until the user quits.
	Start() error

	// Ready is closed once the viewer accepts updates.
	Ready() <-chan struct{}

	// Commands delivers the user's requests.
	Commands() <-chan UICommand

	// WriteStatus shows a status bar message. Phases are defined in ui/models.
	WriteStatus(phase string, message string)

	// WriteState replaces the displayed editor state.
	WriteState(state editor.State)
}
