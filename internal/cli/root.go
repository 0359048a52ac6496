package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgcreation/internal/collector"
	"github.com/vvka-141/pgcreation/internal/config"
	"github.com/vvka-141/pgcreation/internal/files/scanner"
	"github.com/vvka-141/pgcreation/internal/logging"
	"github.com/vvka-141/pgcreation/internal/tui"
	"github.com/vvka-141/pgcreation/pkg/creation"
)

var rootCmd = &cobra.Command{
	Use:   "pgcreation",
	Short: "Find the objects a set of PostgreSQL files creates",
	Long: `pgcreation splits PostgreSQL source files into statements and classifies
each one as the object it creates: tables, views, functions, procedures,
triggers, indexes, types and aggregates, plus INSERT, SELECT and ALTER
statements. For every object it reports the names the statement refers to.

Nothing is executed and no database connection is needed.

Configuration is read from pgcreation.yaml in the working directory, then
PGCREATION_* environment variables (a .env file is honored), then flags.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  20 - Closing comment marker without an opening one
  21 - Statement could not be classified`,
	SilenceUsage: true,
}

var rootFlags struct {
	configFile string
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Bool("help", false, "Help for pgcreation")
	flags.BoolP("verbose", "v", false, "Enable verbose output for all commands")
	flags.StringVarP(&rootFlags.configFile, "config", "c", "", "Config file (default ./"+creation.ConfigFileName+")")
	flags.StringP("format", "f", "", "Output format: table, json or yaml")
	flags.StringSlice("extensions", nil, "File extensions collected from directories")
	flags.StringSlice("exclude", nil, "Glob patterns of paths to skip in directories")
}

// loadConfig resolves the effective configuration for cmd, with the
// command's explicitly set flags taking precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(config.LoadOptions{
		File:  rootFlags.configFile,
		Flags: cmd.Flags(),
	})
}

// newLogger logs to stderr, with verbose output when configured.
func newLogger(cmd *cobra.Command, cfg *config.Config) creation.Logger {
	return logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), cfg.Verbose)
}

// newCollector builds a collector logging to stderr.
func newCollector(cmd *cobra.Command, cfg *config.Config) *collector.Collector {
	return collector.New(newLogger(cmd, cfg), collector.WithScanOptions(scanOptions(cfg)))
}

func scanOptions(cfg *config.Config) scanner.Options {
	return scanner.Options{Extensions: cfg.Extensions, Exclude: cfg.Exclude}
}

// stylerFor styles output only when w is an interactive terminal.
func stylerFor(w io.Writer) tui.Styler {
	f, ok := w.(*os.File)
	if !ok {
		return tui.NewStyler(tui.ModePlain)
	}
	return tui.NewStyler(tui.DetectMode(f))
}

// commandContext returns the context cmd was executed with.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
