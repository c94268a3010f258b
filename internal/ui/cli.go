package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/berlinclock/internal/config"
	"github.com/javiermolinar/berlinclock/internal/db"
	"github.com/javiermolinar/berlinclock/internal/history"
	"github.com/javiermolinar/berlinclock/internal/logging"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   history.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
	log    zerolog.Logger

	// Replaceable in tests.
	now      func() time.Time
	copyText func(string) error
	openRepo func(path string) (history.Repository, error)
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened from the configured db_path on first use.
func NewApp(repo history.Repository, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		repo:     repo,
		config:   cfg,
		log:      zerolog.Nop(),
		now:      time.Now,
		copyText: clipboard.WriteAll,
		openRepo: openRepo,
	}

	opts := &displayOpts{}
	a.root = &cobra.Command{
		Use:   "berlinclock [hh:mm:ss]",
		Short: "Show a time of day as a Berlin Clock",
		Long: `Berlin Clock converts a 24-hour time into the lamps of the Berlin Clock
(Mengenlehreuhr).

The output has five rows: the seconds lamp, the five-hour and one-hour
rows (R = red), the five-minute row (Y = yellow, R marks the quarters)
and the one-minute row. O is a lamp that is off.`,
		Example: `  berlinclock 13:17:01
  berlinclock convert 23:59:59 --format json
  berlinclock now --copy`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.log = logging.New(a.debug, cmd.ErrOrStderr())
			a.log.Debug().
				Str("format", a.config.Output.Format).
				Str("color", a.config.Output.Color).
				Bool("history", a.config.History.Enabled).
				Msg("config loaded")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.runConvert(cmd, args[0], opts)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to stderr")
	opts.bind(a.root)

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.convertCmd())
	a.root.AddCommand(a.nowCmd())
	a.root.AddCommand(a.historyCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "berlinclock %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the history repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// historyRepo returns the repository, opening it on first use.
func (a *App) historyRepo() (history.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	repo, err := a.openRepo(a.config.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	a.repo = repo
	return repo, nil
}

func openRepo(dbPath string) (history.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}
