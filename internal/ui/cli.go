// Package ui implements the cobra command line interface.
package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/writestack/writestack/internal/config"
	"github.com/writestack/writestack/internal/db"
	"github.com/writestack/writestack/internal/note"
	"github.com/writestack/writestack/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   note.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo note.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "writestack",
		Short: "A scheduling queue for short social posts",
		Long: `WriteStack keeps a queue of post drafts and a weekly grid of
recurring send times.

Notes are written or generated as drafts, dropped onto recurring slots,
and reconciled when they drift away from the schedule. Running without a
subcommand opens the interactive queue.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.queueCmd())
	a.root.AddCommand(a.slotsCmd())
	a.root.AddCommand(a.scheduleCmd())
	a.root.AddCommand(a.unscheduleCmd())
	a.root.AddCommand(a.sendCmd())
	a.root.AddCommand(a.archiveCmd())
	a.root.AddCommand(a.draftCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("writestack %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the repository on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	if a.config == nil {
		return errors.New("no configuration loaded")
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
