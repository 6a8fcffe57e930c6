// Package config provides configuration management for the minisql CLI.
//
// Configuration is layered, lowest to highest precedence: built-in
// defaults, a minisql.yaml file, MINISQL_ environment variables, and
// explicitly set command-line flags.
package config

import "github.com/leapstack-labs/minisql/pkg/engine"

// Config holds all CLI configuration options.
type Config struct {
	Theme        string         `koanf:"theme"`
	OutputFormat string         `koanf:"output"`
	StatePath    string         `koanf:"state_path"`
	Verbose      bool           `koanf:"verbose"`
	NoColor      bool           `koanf:"no_color"`
	Server       ServerConfig   `koanf:"server"`
	Snapshot     SnapshotConfig `koanf:"snapshot"`
}

// ServerConfig holds configuration for `minisql serve`.
type ServerConfig struct {
	Addr          string `koanf:"addr"`
	SessionSecret string `koanf:"session_secret"`
	// Watch is a directory whose .sql files are validated on change.
	Watch string `koanf:"watch"`
}

// SnapshotConfig holds snapshot encoding options.
type SnapshotConfig struct {
	// Format is json or yaml.
	Format string `koanf:"format"`
}

// Default configuration values.
const (
	DefaultTheme          = "default"
	DefaultOutput         = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultStateFile      = ".minisql/state.db"
	DefaultAddr           = ":8080"
	DefaultSnapshotFormat = engine.FormatJSON
)

// Default returns a Config populated with the default values.
func Default() *Config {
	return &Config{
		Theme:        DefaultTheme,
		OutputFormat: DefaultOutput,
		StatePath:    DefaultStateFile,
		Server:       ServerConfig{Addr: DefaultAddr},
		Snapshot:     SnapshotConfig{Format: DefaultSnapshotFormat},
	}
}
