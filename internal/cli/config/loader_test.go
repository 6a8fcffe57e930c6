package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "minisql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("theme", "", "")
	fs.StringP("output", "o", "", "")
	fs.String("state", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Bool("no-color", false, "")
	fs.String("addr", "", "")
	fs.Bool("watch", false, "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultSnapshotFormat, cfg.Snapshot.Format)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, filepath.Join(dir, DefaultStateFile), cfg.StatePath)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_Precedence(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, `
theme: dark
output: json
server:
  addr: ":9000"
  watch: queries
snapshot:
  format: yaml
`)

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := LoadConfig("", nil)
		require.NoError(t, err)
		assert.Equal(t, "dark", cfg.Theme)
		assert.Equal(t, "json", cfg.OutputFormat)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, "queries", cfg.Server.Watch)
		assert.Equal(t, "yaml", cfg.Snapshot.Format)
		assert.Equal(t, filepath.Join(dir, "minisql.yaml"), GetConfigFileUsed())
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("MINISQL_THEME", "monochrome")
		t.Setenv("MINISQL_SERVER__ADDR", ":9100")

		cfg, err := LoadConfig("", nil)
		require.NoError(t, err)
		assert.Equal(t, "monochrome", cfg.Theme)
		assert.Equal(t, ":9100", cfg.Server.Addr)
		assert.Equal(t, "json", cfg.OutputFormat)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("MINISQL_THEME", "monochrome")
		fs := newFlags()
		require.NoError(t, fs.Parse([]string{"--theme", "default", "-o", "text", "--addr", ":7000"}))

		cfg, err := LoadConfig("", fs)
		require.NoError(t, err)
		assert.Equal(t, "default", cfg.Theme)
		assert.Equal(t, "text", cfg.OutputFormat)
		assert.Equal(t, ":7000", cfg.Server.Addr)
	})

	t.Run("unset flags do not override", func(t *testing.T) {
		fs := newFlags()
		require.NoError(t, fs.Parse(nil))

		cfg, err := LoadConfig("", fs)
		require.NoError(t, err)
		assert.Equal(t, "dark", cfg.Theme)
	})

	t.Run("command options are not config", func(t *testing.T) {
		fs := newFlags()
		require.NoError(t, fs.Parse([]string{"--watch"}))

		cfg, err := LoadConfig("", fs)
		require.NoError(t, err)
		assert.Equal(t, "queries", cfg.Server.Watch)
	})
}

func TestLoadConfig_StatePathResolution(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	sub := filepath.Join(root, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	writeConfig(t, root, "state_path: data/state.db\n")
	t.Chdir(sub)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "data", "state.db"), cfg.StatePath, "config file found upward anchors the path")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--state", "local.db"}))
	cfg, err = LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sub, "local.db"), cfg.StatePath, "flag paths are relative to the working directory")
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(t.TempDir())
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("verbose: true\nno_color: true\n"), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, path, GetConfigFileUsed())

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad output", mutate: func(c *Config) { c.OutputFormat = "csv" }, errSubstr: "invalid output format"},
		{name: "bad theme", mutate: func(c *Config) { c.Theme = "solarized" }, errSubstr: "unknown theme"},
		{name: "theme is case-insensitive", mutate: func(c *Config) { c.Theme = "DARK" }},
		{name: "bad snapshot format", mutate: func(c *Config) { c.Snapshot.Format = "toml" }, errSubstr: "invalid snapshot format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestGetLogger_Fallback(t *testing.T) {
	assert.NotNil(t, GetLogger(t.Context()))

	logger := NewLogger(os.Stderr, true)
	ctx := WithLogger(t.Context(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
