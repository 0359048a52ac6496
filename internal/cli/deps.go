package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgcreation/internal/tui"
	"github.com/vvka-141/pgcreation/pkg/creation"
)

var depsCmd = &cobra.Command{
	Use:   "deps <path>",
	Short: "Print the dependency edges between objects",
	Long: `Prints one line per dependency, "name -> dependency", in object order.
Dependencies are reported as written; they are not checked against the
objects that were found.

Examples:
  pgcreation deps ./schema
  pgcreation deps ./schema | grep '^orders '`,
	Args:              RequireSourcePath,
	ValidArgsFunction: completeSourceFiles,
	RunE:              runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	coll, err := newCollector(cmd, cfg).CollectPath(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return writeDeps(out, stylerFor(out), coll.Ordered())
}

func writeDeps(w io.Writer, styler tui.Styler, objects []*creation.Object) error {
	for _, obj := range objects {
		for _, dep := range obj.Dependencies {
			if _, err := fmt.Fprintf(w, "%s %s %s\n", styler.Name(obj.Name), styler.Arrow(), dep); err != nil {
				return err
			}
		}
	}
	return nil
}
