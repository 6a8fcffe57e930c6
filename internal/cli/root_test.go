package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/minisql/internal/cli/config"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := NewRootCmd()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "minisql", root.Use)
	for _, flag := range []string{"config", "verbose", "output", "theme", "state", "no-color", "snapshot-format"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	want := []string{
		"version", "tokens", "parse", "validate", "exec", "plan", "suggest",
		"highlight", "rules", "repl", "snapshot", "serve", "completion",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRoot_OutputFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := executeRoot(t, "-o", "json", "validate", "SELECT id FROM users")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, true, res["isValid"])
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "minisql.yaml"), []byte("output: json\n"), 0o600))

	out, stderr, err := executeRoot(t, "-v", "version")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
	assert.Contains(t, stderr, "Using config file:")
}

func TestRoot_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "minisql.yaml"), []byte("output: json\n"), 0o600))
	t.Setenv("MINISQL_OUTPUT", "markdown")

	out, _, err := executeRoot(t, "validate", "DELETE FROM users")
	require.NoError(t, err)
	assert.Contains(t, out, "- ✓ Valid")
}

func TestRoot_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := executeRoot(t, "--theme", "nope", "validate", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}

func TestRoot_StateFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := executeRoot(t, "--state", "custom/state.db", "exec", "--history", "CREATE TABLE t (id INT)")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "custom", "state.db"))
}

func TestRoot_Completion(t *testing.T) {
	out, _, err := executeRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "minisql")

	_, _, err = executeRoot(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestGetConfig(t *testing.T) {
	cfg := GetConfig(context.Background())
	assert.Equal(t, config.DefaultTheme, cfg.Theme)

	loaded := &config.Config{Theme: "dark"}
	ctx := context.WithValue(context.Background(), configKey{}, loaded)
	assert.Same(t, loaded, GetConfig(ctx))
}
