// Package main provides the counterpart command-line interface.
// It finds the header for a C/C++/Objective-C source file (or the source for a header)
// and can show both in a two-pane terminal viewer.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/counterpart/internal/command"
	"github.com/Cyclone1070/counterpart/internal/config"
	"github.com/Cyclone1070/counterpart/internal/counterpart"
	"github.com/Cyclone1070/counterpart/internal/editor"
	"github.com/Cyclone1070/counterpart/internal/logging"
	"github.com/Cyclone1070/counterpart/internal/search"
	"github.com/Cyclone1070/counterpart/internal/service/fs"
	"github.com/Cyclone1070/counterpart/internal/service/path"
)

const logModule = "cli"

// options holds the persistent flag values.
type options struct {
	workspace  string
	configPath string
}

// App holds the wired components shared by the CLI and the viewer.
type App struct {
	Config   *config.Config
	Logger   logging.Logger
	Paths    *path.Resolver
	Session  *editor.Session
	Resolver *counterpart.Resolver
	Registry *command.Registry
}

// newApp wires the counterpart stack for workspace.
func newApp(cfg *config.Config, workspace string, logger logging.Logger) (*App, error) {
	root, err := path.CanonicaliseRoot(workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize workspace root: %w", err)
	}
	paths := path.NewResolver(root)
	osFS := fs.NewOSFileSystem()

	searcher, err := search.New(cfg.Search, root)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace searcher: %w", err)
	}

	session := editor.NewSession(osFS, logger)
	resolver := counterpart.NewResolver(
		counterpart.NewLocalMatcher(osFS),
		counterpart.NewWorkspaceSearcher(searcher, paths, cfg.Search.MaxResultsPerExtension),
		logger,
	)
	presenter := counterpart.NewPresenter(session, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Paths:    paths,
		Session:  session,
		Resolver: resolver,
		Registry: command.NewRegistry(session, resolver, presenter, logger),
	}, nil
}

// loadConfig reads the dotfile, or configPath when set.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.Load()
	}
	cfg, err := config.NewLoader().LoadFrom(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Log.File == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Log.File = config.DefaultLogPath(home)
		}
	}
	return cfg, nil
}

func (o *options) workspaceRoot() (string, error) {
	if o.workspace != "" {
		return o.workspace, nil
	}
	return os.Getwd()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "counterpart [flags] <file>",
		Short: "Find the header or source file paired with a file",
		Long: `counterpart looks for the file paired with <file>: the header for a source file
or the source for a header. It checks the file's own directory first and then
searches the workspace. The absolute path of the match is printed; nothing is
printed when there is none.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := logging.NewLogger(cfg.Log, cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()

			workspace, err := opts.workspaceRoot()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			app, err := newApp(cfg, workspace, logger)
			if err != nil {
				return err
			}
			return runResolve(cmd.Context(), app, args[0], cmd.OutOrStdout())
		},
	}

	root.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "",
		"Workspace root searched when the counterpart is not next to the file (default: current directory)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Config file (default: ~/.config/counterpart/config.json)")

	root.AddCommand(newViewCmd(opts))
	return root
}

// runResolve prints the counterpart of file, or nothing when it has none.
func runResolve(ctx context.Context, app *App, file string, out io.Writer) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	match, err := app.Resolver.Resolve(ctx, abs)
	if err != nil {
		return err
	}
	if !match.Found {
		app.Logger.Info(logModule, "no counterpart", map[string]any{"file": abs})
		return nil
	}

	app.Logger.Info(logModule, "counterpart found", map[string]any{"file": abs, "match": match.Path, "source": match.Source})
	_, err = fmt.Fprintln(out, match.Path)
	return err
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
