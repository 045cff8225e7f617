package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"billable-timer/internal/api"
	"billable-timer/internal/config"
	"billable-timer/internal/logging"
)

// LogFileName is the log file kept in the data directory
const LogFileName = "bt.log"

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	logger zerolog.Logger

	in  io.Reader
	out io.Writer

	app     *App
	stores  *config.Stores
	logFile *os.File
}

// NewRootCommand creates the root cobra command with global flags. Commands
// read from in and write to out; the tracker is interactive only when both
// are terminals.
func NewRootCommand(in io.Reader, out io.Writer) *RootCommand {
	root := &RootCommand{in: in, out: out, logger: zerolog.Nop()}

	root.cmd = &cobra.Command{
		Use:   "bt",
		Short: "A billable work-session timer",
		Long: `Billable Timer (bt) times work sessions against a project and works out what
they earn.

FEATURES:
  • Start, pause, resume and stop a session timer
  • Hourly rate with an optional minimum billable time per session
  • Sessions appended to a CSV ledger or a SQLite database
  • Interactive terminal display, or one command per line from a pipe

EXAMPLES:
  bt track --project "Acme" --rate 60 --min 15   # Interactive tracker
  bt track                                       # Prompt for project and rate
  printf 'start Acme rate=60\nstop\n' | bt track # Scripted session
  bt projects                                    # Saved project names
  bt sessions                                    # Ledger with per-project totals
  bt sessions Acme                               # One project only

TRACKER KEYS:
  s start   p pause/resume   x stop   f flush unsaved sessions   q quit

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config.yaml > defaults
  config.yaml is read from the data directory.

  Storage Configuration:
    BT_STORAGE_BACKEND                     file or sqlite (default: file)
    BT_STORAGE_DATA_DIR                    Data directory (default: ~/.bt)

  Billing Configuration:
    BT_BILLING_DEFAULT_RATE                Hourly rate (default: 40)
    BT_BILLING_DEFAULT_MINIMUM_MINUTES     Minimum billable minutes (default: 0, none)
    BT_BILLING_CURRENCY                    Currency code shown with amounts (default: GBP)

  Display Configuration:
    BT_DISPLAY_REFRESH_INTERVAL            Tracker refresh interval (default: 1s)
    BT_DISPLAY_TIME_FORMAT                 Time format (default: 2006-01-02 15:04:05)

  Application Configuration:
    BT_APPLICATION_TIMEOUT                 Timeout for non-interactive commands (default: 30s)
    BT_APPLICATION_VERBOSE                 Debug logging (default: false)
    BT_DEBUG                               Debug logging when set

GETTING HELP:
  bt [command] --help                      # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases everything it opened
func (r *RootCommand) Execute() error {
	defer r.close()
	return r.cmd.Execute()
}

// SetArgs overrides os.Args for the root command
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("data-dir", "", "Data directory (overrides BT_STORAGE_DATA_DIR)")
	flags.String("backend", "", "Storage backend, file or sqlite (overrides BT_STORAGE_BACKEND)")
	flags.String("rate", "", "Hourly rate (overrides BT_BILLING_DEFAULT_RATE)")
	flags.String("min", "", "Minimum billable minutes per session (overrides BT_BILLING_DEFAULT_MINIMUM_MINUTES)")
	flags.Duration("refresh", 0, "Tracker refresh interval (overrides BT_DISPLAY_REFRESH_INTERVAL)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides BT_APPLICATION_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	trackCmd := &cobra.Command{
		Use:   "track [project]",
		Short: "Time a billable session",
		Long: `Time a billable session for a project.

On a terminal this opens the interactive tracker and prompts for anything
missing. Otherwise commands are read one per line from standard input:

  start [project] [rate=R] [min=M] [desc=text]
  pause | resume | stop | status | flush
  projects | sessions [project] | summary
  quit

Sessions still open when input ends are not recorded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			app, err := r.ensureApp(ctx)
			if err != nil {
				return err
			}

			project, _ := cmd.Flags().GetString("project")
			if project == "" && len(args) > 0 {
				project = strings.Join(args, " ")
			}
			description, _ := cmd.Flags().GetString("description")
			app.SetSessionDefaults(api.SessionInput{ProjectName: project, Description: description})

			if IsTerminal(r.in, r.out) {
				if err := app.PromptSessionInput(ctx); err != nil {
					return err
				}
				return app.RunTracker(ctx, r.in, r.out)
			}
			return app.RunLines(ctx, r.in)
		},
	}
	trackCmd.Flags().StringP("project", "p", "", "Project name")
	trackCmd.Flags().StringP("description", "d", "", "Session description")

	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "List saved project names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runCommand(cmd.Context(), "projects", args)
		},
	}

	sessionsCmd := &cobra.Command{
		Use:   "sessions [project]",
		Short: "List recorded sessions with per-project totals",
		Long: `List every session in the ledger followed by per-project totals.

Examples:
  bt sessions          # All sessions
  bt sessions Acme     # Sessions for project Acme (case-insensitive)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runCommand(cmd.Context(), "sessions", args)
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show per-project totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runCommand(cmd.Context(), "summary", args)
		},
	}

	r.cmd.AddCommand(
		trackCmd,
		projectsCmd,
		sessionsCmd,
		summaryCmd,
	)
}

// runCommand runs a registry command under the application timeout
func (r *RootCommand) runCommand(parent context.Context, name string, args []string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, r.getAppTimeout())
	defer cancel()

	app, err := r.ensureApp(ctx)
	if err != nil {
		return err
	}
	return app.registry.Execute(ctx, name, args)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// loadConfig builds the configuration, applying only the flags that were set
func (r *RootCommand) loadConfig() error {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("data-dir") {
		dataDir, _ := flags.GetString("data-dir")
		overrides.DataDir = &dataDir
	}
	if flags.Changed("backend") {
		backend, _ := flags.GetString("backend")
		overrides.Backend = &backend
	}
	if flags.Changed("rate") {
		rate, _ := flags.GetString("rate")
		overrides.DefaultRate = &rate
	}
	if flags.Changed("min") {
		minimum, _ := flags.GetString("min")
		overrides.MinimumMinutes = &minimum
	}
	if flags.Changed("refresh") {
		refresh, _ := flags.GetDuration("refresh")
		overrides.RefreshInterval = &refresh
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	cfg, err := config.NewLoader().LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg
	return nil
}

// ensureApp opens logging and storage on first use
func (r *RootCommand) ensureApp(ctx context.Context) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	if r.config == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	r.logger = r.openLogger()

	stores, err := config.CreateStores(ctx, r.config, r.logger)
	if err != nil {
		return nil, err
	}
	r.stores = stores

	sessionAPI := api.New(api.Dependencies{
		Projects: stores.Projects,
		Ledger:   stores.Ledger,
		Logger:   r.logger,
		Config:   r.config,
	})
	r.app = NewApp(sessionAPI, r.config, r.out)

	r.logger.Debug().
		Str("backend", r.config.Storage.Backend).
		Str("data_dir", r.config.Storage.DataDir).
		Msg("storage opened")
	return r.app, nil
}

// openLogger logs to bt.log in the data directory, or to stderr when the
// file cannot be opened.
func (r *RootCommand) openLogger() zerolog.Logger {
	verbose := r.config.Application.Verbose

	dir := r.config.Storage.DataDir
	if err := os.MkdirAll(dir, os.FileMode(r.config.Storage.DirPermissions)); err == nil {
		if f, err := logging.OpenFile(filepath.Join(dir, LogFileName)); err == nil {
			r.logFile = f
			return logging.New(f, verbose)
		}
	}

	logger := logging.New(os.Stderr, verbose)
	logger.Warn().Str("data_dir", dir).Msg("log file unavailable, logging to stderr")
	return logger
}

func (r *RootCommand) close() {
	if r.stores != nil {
		if err := r.stores.Close(); err != nil {
			r.logger.Error().Err(err).Msg("failed to close storage")
		}
		r.stores = nil
	}
	if r.logFile != nil {
		r.logFile.Close()
		r.logFile = nil
	}
	r.app = nil
}
