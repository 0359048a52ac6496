package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgcreation/internal/config"
	"github.com/vvka-141/pgcreation/pkg/creation"
)

// outputFormats contains valid --format values for shell completion.
var outputFormats = []string{config.FormatTable, config.FormatJSON, config.FormatYAML}

func init() {
	_ = rootCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// completeFormats provides shell completion for the --format flag.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, f := range outputFormats {
		if strings.HasPrefix(f, toComplete) {
			matches = append(matches, f)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeSourceFiles completes SQL file names for the single positional
// argument. Directories stay navigable.
func completeSourceFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return sqlExtensions(), cobra.ShellCompDirectiveFilterFileExt
}

// completeSourceDirs completes directory names only.
func completeSourceDirs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// sqlExtensions returns the default extensions without their leading dot,
// as cobra's file filter expects.
func sqlExtensions() []string {
	exts := make([]string, len(creation.DefaultSQLExtensions))
	for i, ext := range creation.DefaultSQLExtensions {
		exts[i] = strings.TrimPrefix(ext, ".")
	}
	return exts
}
