package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/vvka-141/pgcreation/pkg/creation"
)

// ErrConfigNotFound is returned when an explicitly requested config file
// does not exist. Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// EnvPrefix marks environment variables that override file settings,
// e.g. PGCREATION_FORMAT=json.
const EnvPrefix = "PGCREATION_"

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Config is the effective pgcreation configuration.
type Config struct {
	// Extensions selects the files collected from a directory.
	Extensions []string `koanf:"extensions" yaml:"extensions"`

	// Exclude holds glob patterns, relative to the collected directory.
	Exclude []string `koanf:"exclude" yaml:"exclude"`

	Format  string `koanf:"format" yaml:"format"`
	Verbose bool   `koanf:"verbose" yaml:"verbose"`

	// Source is the config file that was read, empty when none was found.
	Source string `koanf:"-" yaml:"-"`
}

// LoadOptions tell Load where to look.
type LoadOptions struct {
	// Dir is searched for pgcreation.yaml when File is empty.
	// A missing file in Dir is not an error.
	Dir string

	// File is an explicit config path. It must exist.
	File string

	// EnvFile is a dotenv file loaded into the process environment before
	// PGCREATION_ variables are read. Variables already set are kept.
	// Defaults to ".env" in the working directory.
	EnvFile string

	// Flags contributes explicitly set flags with the highest precedence.
	// Flags not named after a config key are ignored.
	Flags *pflag.FlagSet
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		Extensions: append([]string(nil), creation.DefaultSQLExtensions...),
		Format:     FormatTable,
	}
}

// Load layers defaults, the config file, the environment and flags,
// in increasing precedence.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	defaults := Defaults()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"extensions": defaults.Extensions,
		"exclude":    []string{},
		"format":     defaults.Format,
		"verbose":    defaults.Verbose,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	source, err := findConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", creation.ErrInvalidConfig, source, err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %v", creation.ErrInvalidConfig, envFile, err)
	}

	// PGCREATION_FORMAT -> format
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || !isConfigKey(f.Name) {
				return "", nil
			}
			return f.Name, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", creation.ErrInvalidConfig, err)
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%w: %s", ErrConfigNotFound, opts.File)
			}
			return "", err
		}
		return opts.File, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	candidate := filepath.Join(dir, creation.ConfigFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

func isConfigKey(name string) bool {
	switch name {
	case "extensions", "exclude", "format", "verbose":
		return true
	}
	return false
}

// Validate reports settings no command can work with.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: unknown format %q (want table, json or yaml)", creation.ErrInvalidConfig, c.Format)
	}

	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: extensions must not be empty", creation.ErrInvalidConfig)
	}
	for _, ext := range c.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("%w: empty extension", creation.ErrInvalidConfig)
		}
	}

	for _, pattern := range c.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: bad exclude pattern %q: %v", creation.ErrInvalidConfig, pattern, err)
		}
	}
	return nil
}
