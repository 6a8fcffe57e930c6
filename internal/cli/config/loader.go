package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/minisql/pkg/engine"
	"github.com/leapstack-labs/minisql/pkg/highlight"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "MINISQL_"

var configNames = []string{"minisql.yaml", "minisql.yml"}

// flagKeys maps flag names to config keys. Flags not listed here are
// command options, not configuration.
var flagKeys = map[string]string{
	"theme":           "theme",
	"output":          "output",
	"state":           "state_path",
	"verbose":         "verbose",
	"no-color":        "no_color",
	"addr":            "server.addr",
	"session-secret":  "server.session_secret",
	"snapshot-format": "snapshot.format",
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// findConfigFile returns the explicit path, or the first minisql.yaml or
// minisql.yml found walking up from dir.
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range configNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// envKey transforms MINISQL_SERVER__ADDR -> server.addr.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
//
// A relative state path from the config file is resolved against the
// file's directory; one given by flag is resolved against the working
// directory.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	// 1. Load defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"theme":                 def.Theme,
		"output":                def.OutputFormat,
		"state_path":            def.StatePath,
		"verbose":               false,
		"no_color":              false,
		"server.addr":           def.Server.Addr,
		"server.session_secret": "",
		"server.watch":          "",
		"snapshot.format":       def.Snapshot.Format,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	projectRoot := cwd
	configFileUsed = findConfigFile(cfgFile, cwd)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	// 3. Load environment variables (MINISQL_ prefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	stateFromFlag := false
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			if key == "state_path" {
				stateFromFlag = true
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if stateFromFlag {
		cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, cwd)
	} else {
		cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, projectRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output format %q (want auto, text, markdown or json)", c.OutputFormat)
	}
	if _, ok := highlight.ThemeByName(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", c.Theme, strings.Join(highlight.ThemeNames(), ", "))
	}
	switch c.Snapshot.Format {
	case engine.FormatJSON, engine.FormatYAML:
	default:
		return fmt.Errorf("invalid snapshot format %q (want json or yaml)", c.Snapshot.Format)
	}
	return nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds the CLI logger: text on w, debug level when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
