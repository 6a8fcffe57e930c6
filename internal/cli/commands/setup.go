// Package commands implements the minisql subcommands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/minisql/internal/cli/config"
	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/internal/state"
	"github.com/leapstack-labs/minisql/pkg/engine"
	"github.com/leapstack-labs/minisql/pkg/highlight"
	"github.com/leapstack-labs/minisql/pkg/parser"
)

// errNoInput is returned when no SQL was given and stdin is a terminal.
var errNoInput = errors.New("no SQL given: pass it as an argument, with --file, or on stdin")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Theme    highlight.Theme
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	if cfg.NoColor {
		r.DisableColor()
	}
	theme, ok := highlight.ThemeByName(cfg.Theme)
	if !ok {
		theme = highlight.DefaultTheme
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: r,
		Theme:    theme,
	}
}

// getConfig returns the current configuration, or the defaults when the
// command runs without the root (e.g. in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// openStore opens and migrates the state database, creating its directory.
func openStore(cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate state database: %w", err)
	}
	return store, nil
}

// readSQL returns the SQL text from args (joined), else file, else stdin
// when it is not a terminal.
func readSQL(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), nil
	case !isTerminal(cmd.InOrStdin()):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	}
	return "", errNoInput
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// splitStatements splits text at statement-terminating semicolons. Quoted
// semicolons and those in comments do not split. Blank pieces are dropped.
func splitStatements(text string) []string {
	var stmts []string
	start := 0
	for _, tok := range parser.Tokenize(text) {
		if tok.IsPunct(";") {
			if s := strings.TrimSpace(text[start:tok.Offset]); s != "" {
				stmts = append(stmts, s)
			}
			start = tok.End()
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" && !onlyComments(s) {
		stmts = append(stmts, s)
	}
	return stmts
}

func onlyComments(s string) bool {
	for _, tok := range parser.Tokenize(s) {
		if !tok.IsTrivia() {
			return false
		}
	}
	return true
}

// snapshotFormat picks the encoding from the file extension.
func snapshotFormat(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return engine.FormatYAML
	case ".json":
		return engine.FormatJSON
	}
	return fallback
}

// loadSnapshotFile replaces the engine's tables with a snapshot file.
func loadSnapshotFile(eng *engine.Engine, path, fallback string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	snap, err := engine.UnmarshalSnapshot(data, snapshotFormat(path, fallback))
	if err != nil {
		return err
	}
	if err := eng.Import(snap); err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}
	return nil
}

// saveSnapshotFile writes the engine's tables to path.
func saveSnapshotFile(eng *engine.Engine, path, fallback string) error {
	data, err := engine.MarshalSnapshot(eng.Export(), snapshotFormat(path, fallback))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
