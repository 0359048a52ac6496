package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pgcreation/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration commands would run with, after pgcreation.yaml,
PGCREATION_* environment variables and flags have been applied. The file
that was read, if any, is reported on stderr.

The output is valid pgcreation.yaml and can be used as a starting point:

  pgcreation config > pgcreation.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Source != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "# from %s\n", cfg.Source)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "# no config file, defaults applied")
	}
	return writeConfig(cmd.OutOrStdout(), cfg)
}

func writeConfig(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}
