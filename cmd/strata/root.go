package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/pthm/strata/internal/cli"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	logger     = newLogger(os.Stderr, 0, false)

	// Persistent flags
	cfgFile  string
	verbose  int
	quiet    bool
	dbURL    string
	dbDriver string
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Inspect and maintain strata databases",
	Long: `strata - data-access layer administration

strata inspects table structure, clones and alters tables, and manages rows
of the records table with soft-delete semantics.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.ErrOrStderr(), verbose, quiet)

		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		cfg.Database.Driver = resolveString(dbDriver, cfg.Database.Driver)
		logger.Debug("configuration loaded", "path", configPath, "driver", cfg.Database.Driver)

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupSchema  = "schema"
	groupRecords = "records"
	groupUtility = "utility"
)

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: auto-discover strata.yaml)")
	pf.CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&dbURL, "db", "", "database connection string (overrides config)")
	pf.StringVar(&dbDriver, "driver", "", "database driver: mysql, postgres, pgx or sqlite")

	// Define command groups
	rootCmd.AddGroup(
		&cobra.Group{ID: groupSchema, Title: "Schema:"},
		&cobra.Group{ID: groupRecords, Title: "Records:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	// Schema commands
	statusCmd.GroupID = groupSchema
	columnsCmd.GroupID = groupSchema
	indexesCmd.GroupID = groupSchema
	tableCmd.GroupID = groupSchema
	rootCmd.AddCommand(statusCmd, columnsCmd, indexesCmd, tableCmd)

	// Record commands
	recordCmd.GroupID = groupRecords
	rootCmd.AddCommand(recordCmd)

	// Utility commands
	configCmd.GroupID = groupUtility
	doctorCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd, doctorCmd, versionCmd)
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		cli.ExitWithError(err)
	}
}

// newLogger returns a tint logger at WARN, raised by each -v and lowered to
// ERROR by -q.
func newLogger(w io.Writer, verbosity int, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbosity == 1:
		level = slog.LevelInfo
	case verbosity >= 2:
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
