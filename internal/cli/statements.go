package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var statementsCmd = &cobra.Command{
	Use:   "statements <file>",
	Short: "Print the statements of a SQL file",
	Long: `Strips comments from a SQL file and splits it into statements, without
classifying them. Statements are printed in file order, separated by a
blank line.

Dollar-quoted bodies and BEGIN ... END blocks stay inside the statement
that contains them.

Examples:
  pgcreation statements schema.sql
  pgcreation statements functions.sql | grep -c FUNCTION`,
	Args:              RequireSourceFile,
	ValidArgsFunction: completeSourceFiles,
	RunE:              runStatements,
}

func init() {
	rootCmd.AddCommand(statementsCmd)
}

func runStatements(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	statements, err := newCollector(cmd, cfg).Statements(args[0])
	if err != nil {
		return err
	}
	return writeStatements(cmd.OutOrStdout(), statements)
}

func writeStatements(w io.Writer, statements []string) error {
	for i, stmt := range statements {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, stmt); err != nil {
			return err
		}
	}
	return nil
}
