package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/spf13/cobra"

	"github.com/Cyclone1070/counterpart/internal/command"
	"github.com/Cyclone1070/counterpart/internal/logging"
	"github.com/Cyclone1070/counterpart/internal/ui"
	"github.com/Cyclone1070/counterpart/internal/ui/models"
	uiservices "github.com/Cyclone1070/counterpart/internal/ui/services"
)

func newViewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "view [flags] <file>",
		Short: "Show a file and its counterpart side by side",
		Long: `view opens <file> in a two-pane terminal viewer.

Keys: o switch, O switch into the second column, tab cycle focus,
j/k scroll, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			// The viewer owns the terminal, so logs only go to the file.
			logger := logging.NewFileLogger(cfg.Log)
			defer func() { _ = logger.Sync() }()

			workspace, err := opts.workspaceRoot()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			app, err := newApp(cfg, workspace, logger)
			if err != nil {
				return err
			}
			file, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			return runInteractive(cmd.Context(), createRealUI(app), app, file)
		},
	}
}

func createRealUI(app *App) ui.Viewer {
	channels := ui.NewUIChannels()
	renderer := uiservices.NewGlamourRenderer(app.Config.UI.GlamourStyle)
	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}
	return ui.NewUI(channels, app.Config.UI, renderer, spinnerFactory, app.Paths.Display)
}

// runInteractive runs the viewer on the calling goroutine and handles its
// commands on another until the viewer exits.
func runInteractive(ctx context.Context, viewer ui.Viewer, app *App, file string) error {
	handlerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		select {
		case <-viewer.Ready():
		case <-handlerCtx.Done():
			return
		}

		if err := app.Session.Open(handlerCtx, file); err != nil {
			viewer.WriteStatus(models.PhaseError, fmt.Sprintf("Error: %v", err))
		} else {
			viewer.WriteStatus(models.PhaseInfo, "Opened "+app.Paths.Display(file))
		}
		viewer.WriteState(app.Session.Snapshot())

		handleCommands(handlerCtx, viewer, app)
	}()

	err := viewer.Start()

	// Viewer exited, stop the handler
	cancel()
	wg.Wait()

	if err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}

func handleCommands(ctx context.Context, viewer ui.Viewer, app *App) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-viewer.Commands():
			switch cmd.Type {
			case ui.CommandSwitch:
				runSwitch(ctx, viewer, app, command.SwitchID)
			case ui.CommandSwitchSecondary:
				runSwitch(ctx, viewer, app, command.SwitchSecondaryID)
			case ui.CommandFocusNext:
				app.Session.CycleFocus()
			default:
				app.Logger.Warn(logModule, "unknown viewer command", map[string]any{"type": cmd.Type})
				continue
			}
			viewer.WriteState(app.Session.Snapshot())
		}
	}
}

// runSwitch executes a switch command and reports the outcome in the status bar.
func runSwitch(ctx context.Context, viewer ui.Viewer, app *App, id string) {
	out, err := app.Registry.Run(ctx, id, nil)
	switch {
	case err != nil:
		viewer.WriteStatus(models.PhaseError, fmt.Sprintf("Error: %v", err))
	case out.From == "":
		viewer.WriteStatus(models.PhaseInfo, "No active file")
	case !out.Match.Found:
		viewer.WriteStatus(models.PhaseInfo, "No counterpart for "+app.Paths.Display(out.From))
	default:
		viewer.WriteStatus(models.PhaseDone, fmt.Sprintf("Opened %s (%s)", app.Paths.Display(out.Match.Path), out.Match.Source))
	}
}
