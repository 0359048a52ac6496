package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pgcreation/internal/config"
	"github.com/vvka-141/pgcreation/internal/tui"
	"github.com/vvka-141/pgcreation/pkg/creation"
)

var objectsCmd = &cobra.Command{
	Use:   "objects <path>",
	Short: "List the objects created by a SQL file or directory",
	Long: `Classifies every statement of a SQL file, or of every SQL file under a
directory, and lists the resulting objects with their dependencies.

When a name is defined more than once the last definition wins. Across a
directory, files are taken in path order.

Examples:
  pgcreation objects schema.sql
  pgcreation objects ./schema --format json
  pgcreation objects ./schema --exclude 'legacy' --format yaml`,
	Args:              RequireSourcePath,
	ValidArgsFunction: completeSourceFiles,
	RunE:              runObjects,
}

func init() {
	rootCmd.AddCommand(objectsCmd)
}

func runObjects(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	coll, err := newCollector(cmd, cfg).CollectPath(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return renderObjects(out, stylerFor(out), coll.Ordered(), cfg.Format)
}

func renderObjects(w io.Writer, styler tui.Styler, objects []*creation.Object, format string) error {
	switch format {
	case config.FormatJSON:
		return renderObjectsJSON(w, objects)
	case config.FormatYAML:
		return renderObjectsYAML(w, objects)
	default:
		return renderObjectsTable(w, styler, objects)
	}
}

func renderObjectsTable(w io.Writer, styler tui.Styler, objects []*creation.Object) error {
	if len(objects) == 0 {
		_, _ = fmt.Fprintln(w, "(0 objects)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "Name", "Dependencies", "File"})

	for _, obj := range objects {
		deps := strings.Join(obj.Dependencies, ", ")
		if deps == "" {
			deps = styler.Muted("-")
		}
		t.AppendRow(table.Row{styler.Kind(obj.Kind), styler.Name(obj.Name), deps, obj.Filename})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d objects)\n", len(objects))
	return nil
}

func renderObjectsJSON(w io.Writer, objects []*creation.Object) error {
	if objects == nil {
		objects = []*creation.Object{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(objects)
}

func renderObjectsYAML(w io.Writer, objects []*creation.Object) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(objects); err != nil {
		return err
	}
	return enc.Close()
}
