// Package ui implements the bayboard command line.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/bayboard/internal/config"
	"github.com/javiermolinar/bayboard/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config    *config.Config
	root      *cobra.Command
	debug     bool   // Enable debug logging
	boardPath string // overrides config board.path
	noColor   bool
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "bayboard",
		Short: "A resource scheduling board for the terminal",
		Long: `Bayboard lays out operators as rows and tasks as bars on a time grid.

Tasks can be dragged to another time, day or operator and resized, while
placements that collide with shifts, lunch breaks or days off are refused.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			days, _ := cmd.Flags().GetInt("days")
			return a.runBoard(days)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to the configured log file")
	a.root.PersistentFlags().StringVar(&a.boardPath, "board", "", "Board file (default from config)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")
	a.root.Flags().Int("days", 0, "Visible days (default from config)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.initCmd())
	a.root.AddCommand(a.rowsCmd())
	a.root.AddCommand(a.dragCmd())
	a.root.AddCommand(a.resizeCmd())
	a.root.AddCommand(a.createCmd())
	a.root.AddCommand(a.actCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bayboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) runBoard(days int) error {
	s, err := a.openSession(nil)
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	return tui.Run(s.board, tui.Options{
		Theme:  a.config.UI.Theme,
		Days:   days,
		Logger: s.logger,
	})
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
