package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireSourceFile validates that exactly one <file> argument is provided.
func RequireSourceFile(cmd *cobra.Command, args []string) error {
	return requireOne(cmd, args, "file", "schema.sql")
}

// RequireSourcePath validates that exactly one <path> argument is provided.
// The path may name a file or a directory.
func RequireSourcePath(cmd *cobra.Command, args []string) error {
	return requireOne(cmd, args, "path", "./schema")
}

// RequireSourceDir validates that exactly one <dir> argument is provided.
func RequireSourceDir(cmd *cobra.Command, args []string) error {
	return requireOne(cmd, args, "dir", "./schema")
}

func requireOne(cmd *cobra.Command, args []string, name, example string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <%s>

Usage: %s

Example:
  %s %s`, name, cmd.UseLine(), cmd.CommandPath(), example)
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
