// Package command exposes the user-invokable counterpart commands by ID.
package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/counterpart/internal/counterpart"
	"github.com/Cyclone1070/counterpart/internal/host"
)

const (
	SwitchID          = "counterpart.switch"
	SwitchSecondaryID = "counterpart.switchSecondary"
)

const logModule = "command"

var ErrRelativePath = errors.New("path must be absolute")

// UnknownCommandError is returned by Execute for an unregistered ID.
type UnknownCommandError struct {
	ID string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.ID)
}

// SwitchArgs are the optional arguments of both switch commands.
// An empty Path means the active document.
type SwitchArgs struct {
	Path string `mapstructure:"path"`
}

// Validate checks that an explicit path is absolute.
func (a SwitchArgs) Validate() error {
	if a.Path != "" && !filepath.IsAbs(a.Path) {
		return fmt.Errorf("%w: %s", ErrRelativePath, a.Path)
	}
	return nil
}

// Command describes a registered command.
type Command struct {
	ID    string
	Title string
	Mode  counterpart.PaneMode
}

// Outcome reports what a command did. A zero Outcome means it did nothing.
type Outcome struct {
	From      string
	Match     counterpart.MatchResult
	Presented bool
}

type resolver interface {
	Resolve(ctx context.Context, activePath string) (counterpart.MatchResult, error)
}

type presenter interface {
	Present(ctx context.Context, path string, mode counterpart.PaneMode) error
}

type logger interface {
	Info(module, message string, details map[string]any)
	Error(module, message string, details map[string]any)
}

// Registry holds the switch commands and runs them against the host.
type Registry struct {
	commands  map[string]Command
	active    host.ActiveDocument
	resolver  resolver
	presenter presenter
	logger    logger
}

// NewRegistry creates a registry with both switch commands registered.
func NewRegistry(active host.ActiveDocument, resolver resolver, presenter presenter, logger logger) *Registry {
	if active == nil {
		panic("active is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if presenter == nil {
		panic("presenter is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	r := &Registry{
		commands:  make(map[string]Command),
		active:    active,
		resolver:  resolver,
		presenter: presenter,
		logger:    logger,
	}
	r.register(Command{ID: SwitchID, Title: "Switch Header/Source", Mode: counterpart.PaneReuse})
	r.register(Command{ID: SwitchSecondaryID, Title: "Switch Header/Source in Second Column", Mode: counterpart.PaneSecondary})
	return r
}

func (r *Registry) register(c Command) {
	r.commands[c.ID] = c
}

// Commands lists the registered commands sorted by ID.
func (r *Registry) Commands() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].ID < cmds[j].ID
	})
	return cmds
}

// Execute runs the command id. Having no active document, no extension or no
// counterpart is not an error: the command simply does nothing.
func (r *Registry) Execute(ctx context.Context, id string, args map[string]any) error {
	_, err := r.Run(ctx, id, args)
	return err
}

// Run is Execute that also reports what happened.
func (r *Registry) Run(ctx context.Context, id string, args map[string]any) (Outcome, error) {
	cmd, ok := r.commands[id]
	if !ok {
		return Outcome{}, &UnknownCommandError{ID: id}
	}

	var req SwitchArgs
	if err := mapstructure.Decode(args, &req); err != nil {
		return Outcome{}, fmt.Errorf("invalid arguments for %s: %w", id, err)
	}
	if err := req.Validate(); err != nil {
		return Outcome{}, fmt.Errorf("%s validation failed: %w", id, err)
	}

	from := req.Path
	if from == "" {
		path, ok := r.active.ActivePath()
		if !ok {
			return Outcome{}, nil
		}
		from = path
	}

	match, err := r.resolver.Resolve(ctx, from)
	if err != nil {
		r.logger.Error(logModule, "resolve failed", map[string]any{"command": id, "from": from, "error": err})
		return Outcome{From: from}, err
	}
	if !match.Found {
		r.logger.Info(logModule, "no counterpart", map[string]any{"command": id, "from": from})
		return Outcome{From: from}, nil
	}

	if err := r.presenter.Present(ctx, match.Path, cmd.Mode); err != nil {
		r.logger.Error(logModule, "present failed", map[string]any{"command": id, "path": match.Path, "error": err})
		return Outcome{From: from, Match: match}, err
	}
	return Outcome{From: from, Match: match, Presented: true}, nil
}
