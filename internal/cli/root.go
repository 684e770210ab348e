// Package cli implements the inspectdb command tree: load for ingesting
// datasets and query for evaluating selection expressions.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kangyi02/DaoAI-assessment/internal/config"
)

// RootOptions holds global flags for all commands. Config and Logger are
// resolved by the root PersistentPreRunE before any subcommand runs.
type RootOptions struct {
	Database   string
	Driver     string
	ConfigFile string
	Verbose    bool
	LogFormat  string

	Config *config.Config
	Logger *slog.Logger
}

// ValidLogFormats defines the allowed log formats.
var ValidLogFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the inspectdb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "inspectdb",
		Short: "Spatial selection over 2-D inspection points",
		Long: `inspectdb stores 2-D inspection points and answers boolean
region-selection queries over them.

Load a dataset with "inspectdb load", then select points with
"inspectdb query" using a JSON expression tree of operator_crop,
operator_and and operator_or nodes. Matching points are written as
"x y" lines sorted by y, then x.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidLogFormat(opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be one of %v", opts.LogFormat, ValidLogFormats)
			}
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Database, "database", "d", "inspection.db", "database DSN (SQLite path or postgres URL)")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "sqlite", "database driver (sqlite|postgres)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default searches . and $HOME/.inspectdb)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "log format (text|json)")

	cmd.AddCommand(NewLoadCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))

	return cmd
}

// resolve layers flag values over the loaded configuration and installs the
// process logger. Flags only override config when set on the command line,
// so INSPECTDB_* variables and config files still apply to flags left at
// their defaults.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("database") {
		cfg.Database.DSN = o.Database
	}
	if flags.Changed("driver") {
		cfg.Database.Driver = o.Driver
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.LogFormat
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}

	o.Config = cfg
	o.Logger = newLogger(cmd.ErrOrStderr(), cfg.Log)
	return nil
}

// newLogger builds the process logger. Diagnostics go to stderr so query
// output on stdout stays clean.
func newLogger(w io.Writer, cfg config.Log) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// isValidLogFormat checks if the format is one of the allowed values.
func isValidLogFormat(format string) bool {
	for _, f := range ValidLogFormats {
		if f == format {
			return true
		}
	}
	return false
}
