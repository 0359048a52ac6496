package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pgcreation/internal/tui"
	"github.com/vvka-141/pgcreation/pkg/creation"
)

// executeCommand runs the root command with args and restores flag state afterwards.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootFlags.configFile = ""
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeSQL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const shopSchema = `CREATE TABLE customers (id INT PRIMARY KEY);
CREATE TABLE orders (id INT, customer INT REFERENCES customers(id));
CREATE VIEW big_orders AS SELECT * FROM orders o JOIN customers c ON c.id = o.customer;
`

func TestStatementsCmd(t *testing.T) {
	path := writeSQL(t, t.TempDir(), "s.sql", "SELECT 1; -- first\n/* second */ SELECT 2;")

	stdout, _, err := executeCommand(t, "statements", path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;\n\nSELECT 2;\n", stdout)
}

func TestObjectsCmd_JSON(t *testing.T) {
	path := writeSQL(t, t.TempDir(), "shop.sql", shopSchema)

	stdout, _, err := executeCommand(t, "objects", path, "--format", "json")
	require.NoError(t, err)

	var got []struct {
		Kind         string   `json:"kind"`
		Name         string   `json:"name"`
		Dependencies []string `json:"dependencies"`
		Filename     string   `json:"filename"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "table", got[0].Kind)
	assert.Equal(t, "customers", got[0].Name)
	assert.Empty(t, got[0].Dependencies)
	assert.Equal(t, path, got[0].Filename)

	assert.Equal(t, []string{"customers"}, got[1].Dependencies)

	assert.Equal(t, "view", got[2].Kind)
	assert.Equal(t, []string{"orders", "customers"}, got[2].Dependencies)
}

func TestObjectsCmd_YAML(t *testing.T) {
	path := writeSQL(t, t.TempDir(), "shop.sql", shopSchema)

	stdout, _, err := executeCommand(t, "objects", path, "-f", "yaml")
	require.NoError(t, err)

	var got []struct {
		Kind string `yaml:"kind"`
		Name string `yaml:"name"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "orders", got[1].Name)
	assert.Equal(t, "view", got[2].Kind)
}

func TestObjectsCmd_Table(t *testing.T) {
	path := writeSQL(t, t.TempDir(), "shop.sql", shopSchema)

	stdout, _, err := executeCommand(t, "objects", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "big_orders")
	assert.Contains(t, stdout, "orders, customers")
	assert.Contains(t, stdout, "(3 objects)")
}

func TestObjectsCmd_DirectoryWithExclude(t *testing.T) {
	dir := t.TempDir()
	writeSQL(t, dir, "001_customers.sql", "CREATE TABLE customers (id INT);")
	writeSQL(t, dir, "002_orders.sql", "CREATE TABLE orders (c INT REFERENCES customers(id));")
	writeSQL(t, dir, "legacy/broken.sql", "DROP TABLE orders;")

	stdout, _, err := executeCommand(t, "objects", dir, "--exclude", "legacy", "--format", "json")
	require.NoError(t, err)

	var got []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "customers", got[0].Name)
	assert.Equal(t, "orders", got[1].Name)
}

func TestObjectsCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	drop := writeSQL(t, dir, "drop.sql", "DROP TABLE t;")
	comment := writeSQL(t, dir, "comment.sql", "SELECT 1;\n*/")
	ok := writeSQL(t, dir, "ok.sql", "SELECT 1;")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing argument", []string{"objects"}, creation.ExitUsageError},
		{"too many arguments", []string{"objects", "a", "b"}, creation.ExitUsageError},
		{"unknown flag", []string{"objects", ok, "--bogus"}, creation.ExitUsageError},
		{"unclassifiable statement", []string{"objects", drop}, creation.ExitUnclassifiable},
		{"malformed comment", []string{"objects", comment}, creation.ExitMalformedComment},
		{"unknown format", []string{"objects", ok, "--format", "xml"}, creation.ExitConfigError},
		{"missing config file", []string{"objects", ok, "--config", filepath.Join(dir, "none.yaml")}, creation.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, creation.ExitCodeForError(err), "error: %v", err)
		})
	}
}

func TestDepsCmd(t *testing.T) {
	path := writeSQL(t, t.TempDir(), "shop.sql", shopSchema)

	stdout, _, err := executeCommand(t, "deps", path)
	require.NoError(t, err)
	assert.Equal(t, "orders -> customers\nbig_orders -> orders\nbig_orders -> customers\n", stdout)
}

func TestConfigCmd(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "config", "--format", "json", "--exclude", "legacy")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "json", got["format"])
	assert.Equal(t, []interface{}{"legacy"}, got["exclude"])
	assert.NotContains(t, stdout, "source")
	assert.Contains(t, stderr, "#")
}

func TestConfigCmd_ExplicitFile(t *testing.T) {
	path := writeSQL(t, t.TempDir(), "custom.yaml", "format: yaml\nextensions: [\".ddl\"]\n")

	stdout, stderr, err := executeCommand(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "format: yaml")
	assert.Contains(t, stdout, ".ddl")
	assert.Contains(t, stderr, path)
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "pgcreation "), "got %q", stdout)
}

func TestRenderObjects_EmptyCollection(t *testing.T) {
	styler := tui.NewStyler(tui.ModePlain)

	var buf bytes.Buffer
	require.NoError(t, renderObjects(&buf, styler, nil, "table"))
	assert.Equal(t, "(0 objects)\n", buf.String())

	buf.Reset()
	require.NoError(t, renderObjects(&buf, styler, nil, "json"))
	assert.Equal(t, "[]\n", buf.String())
}

func TestCompleteFormats(t *testing.T) {
	got, directive := completeFormats(rootCmd, nil, "j")
	assert.Equal(t, []string{"json"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestSQLExtensions(t *testing.T) {
	exts := sqlExtensions()
	assert.Contains(t, exts, "sql")
	for _, ext := range exts {
		assert.False(t, strings.HasPrefix(ext, "."), ext)
	}
}
