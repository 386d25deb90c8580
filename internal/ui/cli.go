// Package ui implements the timetable command line.
package ui

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/logging"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *config.Config
	configPath string
	root       *cobra.Command
	logger     zerolog.Logger
	debug      bool // Enable TUI debug logging
	noColor    bool
	closers    []func() error
}

// NewApp creates a new CLI application. configPath is where `config init`
// writes; empty means the default location.
func NewApp(cfg *config.Config, configPath string) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	a := &App{config: cfg, configPath: configPath, logger: logging.Nop()}

	a.root = &cobra.Command{
		Use:   "timetable",
		Short: "Build weekly class timetables from the lecture catalog",
		Long: `Timetable lets you search the lecture catalog and assemble one or
more weekly schedules on a day/period grid.

Run without arguments to open the interactive grid.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.noColor {
				DisableColor()
			}
			logger, err := logging.New(cmd.ErrOrStderr(), a.config.Log.Level, a.config.Log.Format, "timetable")
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			store, cache, closeLog, err := a.prepareInteractive()
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()
			return tui.Run(store, cache, a.config, tui.WithLogger(logging.Component(a.logger, "tui")))
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Log TUI events to "+logging.DebugLogPath)
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.searchCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.catalogCmd())

	return a
}

// prepareInteractive builds the store and catalog cache behind the grid.
// The TUI owns the terminal, so only --debug logs, and every component
// shares the one debug file.
func (a *App) prepareInteractive() (*schedule.Store, *catalog.Cache, func() error, error) {
	logger, closeLog, err := tui.OpenDebugLog(a.debug)
	if err != nil {
		return nil, nil, nil, err
	}
	a.logger = logger

	cache, err := a.openCache()
	if err != nil {
		_ = closeLog()
		return nil, nil, nil, err
	}
	store := schedule.NewStore(nil, schedule.WithLogger(logging.Component(a.logger, "store")))
	return store, cache, closeLog, nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timetable %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases resources opened by commands.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
