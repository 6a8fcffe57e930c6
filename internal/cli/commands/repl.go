package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/internal/state"
	"github.com/leapstack-labs/minisql/pkg/engine"
	"github.com/leapstack-labs/minisql/pkg/lint"
)

const (
	replPrompt     = "minisql> "
	replContPrompt = "    ...> "
	defaultHistory = 20
)

var dotCommands = []string{
	".help", ".tables", ".schema", ".export", ".import", ".save", ".load",
	".snapshots", ".history", ".reset", ".clear", ".quit", ".exit",
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	var load string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL shell",
		Long: `Start an interactive shell with an in-memory store.

Statements end with a semicolon and may span lines. Tab completes
keywords, data types and table names. Executed statements are recorded
in the state database history.

Type .help for the dot-commands.`,
		Example: `  minisql repl
  minisql repl --load users.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, load)
		},
	}
	cmd.Flags().StringVar(&load, "load", "", "Load tables from a snapshot file first")
	return cmd
}

func runREPL(cmd *cobra.Command, load string) error {
	ctx := cmd.Context()
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	sess := &replSession{
		ctx:       ctx,
		r:         cmdCtx.Renderer,
		format:    cfg.Snapshot.Format,
		sessionID: "repl-" + uuid.NewString(),
	}

	engCfg := engine.Config{Logger: cmdCtx.Logger}
	if store, err := openStore(cfg, cmdCtx.Logger); err != nil {
		cmdCtx.Logger.Warn("state database unavailable; history and snapshots disabled", "error", err)
	} else {
		defer func() { _ = store.Close() }()
		sess.store = store
		engCfg.OnExecute = historyHook(ctx, store, sess.sessionID, cmdCtx.Logger)
	}
	sess.eng = engine.New(engCfg)

	if load != "" {
		if err := loadSnapshotFile(sess.eng, load, cfg.Snapshot.Format); err != nil {
			return err
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     filepath.Join(filepath.Dir(cfg.StatePath), "repl_history"),
		AutoComplete:    &sqlCompleter{eng: sess.eng},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sess.r.Println("minisql REPL")
	sess.r.Println("Type .help for commands, .quit to exit")
	sess.r.Println()

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := sess.dot(line); quit {
				return nil
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buf.WriteString("\n")
			rl.SetPrompt(replContPrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		sess.execute(buf.String())
		buf.Reset()
		sess.r.Println()
	}
}

// replSession is the state behind one REPL.
type replSession struct {
	ctx       context.Context
	eng       *engine.Engine
	store     state.Store // nil when the state database is unavailable
	r         *output.Renderer
	format    string
	sessionID string
}

func (s *replSession) execute(text string) {
	for _, sql := range splitStatements(text) {
		_ = renderResult(s.r, s.eng.Execute(sql))
	}
}

// dot runs a dot-command and reports whether the REPL should exit.
func (s *replSession) dot(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	var err error
	switch command {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(s.r.Writer())
	case ".tables":
		s.listTables()
	case ".schema":
		err = s.showSchema(arg)
	case ".export":
		err = s.withArg(arg, "file", func() error {
			if err := saveSnapshotFile(s.eng, arg, s.format); err != nil {
				return err
			}
			s.r.Success("Exported to " + arg)
			return nil
		})
	case ".import":
		err = s.withArg(arg, "file", func() error {
			if err := loadSnapshotFile(s.eng, arg, s.format); err != nil {
				return err
			}
			s.r.Success(fmt.Sprintf("Imported %d table(s) from %s", len(s.eng.Tables()), arg))
			return nil
		})
	case ".save":
		err = s.withArg(arg, "name", s.saveSnapshot(arg))
	case ".load":
		err = s.withArg(arg, "name", s.loadSnapshot(arg))
	case ".snapshots":
		err = s.listSnapshots()
	case ".history":
		err = s.showHistory(arg)
	case ".reset":
		s.eng.Reset()
		s.r.Success("All tables dropped")
	case ".clear":
		s.r.Printf("\033[H\033[2J")
	default:
		err = fmt.Errorf("unknown command: %s (type .help for commands)", command)
	}
	if err != nil {
		s.r.Error(err.Error())
	}
	return false
}

func (s *replSession) withArg(arg, what string, fn func() error) error {
	if arg == "" {
		return fmt.Errorf("missing %s argument", what)
	}
	return fn()
}

func (s *replSession) requireStore() error {
	if s.store == nil {
		return errors.New("state database unavailable")
	}
	return nil
}

func (s *replSession) listTables() {
	names := s.eng.Tables()
	if len(names) == 0 {
		s.r.Muted("No tables")
		return
	}
	snap := s.eng.Export()
	rows := make([][]string, len(snap.Tables))
	for i, t := range snap.Tables {
		rows[i] = []string{t.Name, strconv.Itoa(len(t.Schema.Columns)), strconv.Itoa(len(t.Data))}
	}
	s.r.Table([]string{"Table", "Columns", "Rows"}, rows)
}

func (s *replSession) showSchema(name string) error {
	if name == "" {
		return errors.New("usage: .schema <table>")
	}
	schema, ok := s.eng.Schema(name)
	if !ok {
		return fmt.Errorf("table '%s' does not exist", name)
	}
	rows := make([][]string, len(schema.Columns))
	for i, c := range schema.Columns {
		rows[i] = []string{c.Name, c.Type, strings.Join(c.Constraints, " ")}
	}
	s.r.Table([]string{"Column", "Type", "Constraints"}, rows)
	return nil
}

func (s *replSession) saveSnapshot(name string) func() error {
	return func() error {
		if err := s.requireStore(); err != nil {
			return err
		}
		if err := s.store.SaveSnapshot(s.ctx, name, s.eng.Export()); err != nil {
			return err
		}
		s.r.Success(fmt.Sprintf("Saved snapshot '%s'", name))
		return nil
	}
}

func (s *replSession) loadSnapshot(name string) func() error {
	return func() error {
		if err := s.requireStore(); err != nil {
			return err
		}
		snap, err := s.store.LoadSnapshot(s.ctx, name)
		if errors.Is(err, state.ErrSnapshotNotFound) {
			return fmt.Errorf("snapshot '%s' not found", name)
		}
		if err != nil {
			return err
		}
		if err := s.eng.Import(snap); err != nil {
			return err
		}
		s.r.Success(fmt.Sprintf("Loaded snapshot '%s'", name))
		return nil
	}
}

func (s *replSession) listSnapshots() error {
	if err := s.requireStore(); err != nil {
		return err
	}
	infos, err := s.store.ListSnapshots(s.ctx)
	if err != nil {
		return err
	}
	return renderSnapshotList(s.r, infos)
}

func (s *replSession) showHistory(arg string) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	limit := defaultHistory
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("usage: .history [n]")
		}
		limit = n
	}
	entries, err := s.store.ListHistory(s.ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		s.r.Muted("No history")
		return nil
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		status := "ok"
		if !e.Success {
			status = "error"
		}
		rows[i] = []string{e.ExecutedAt.Local().Format("2006-01-02 15:04:05"), status, e.SQL}
	}
	s.r.Table([]string{"Executed", "Status", "SQL"}, rows)
	return nil
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help              Show this help message
  .tables            List tables with column and row counts
  .schema <table>    Show the columns of a table
  .export <file>     Write all tables to a snapshot file (.json, .yaml)
  .import <file>     Replace all tables with a snapshot file
  .save <name>       Save all tables as a named snapshot
  .load <name>       Replace all tables with a named snapshot
  .snapshots         List named snapshots
  .history [n]       Show the last n executed statements (default 20)
  .reset             Drop all tables
  .clear             Clear the screen
  .quit / .exit      Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completes keywords, types and table names
`
	_, _ = fmt.Fprintln(w, help)
}

// sqlCompleter completes the word before the cursor with lint suggestions.
type sqlCompleter struct {
	eng *engine.Engine
}

// Do implements readline.AutoCompleter.
func (c *sqlCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	word := string(line[start:pos])
	before := string(line[:pos])

	var candidates []string
	if strings.HasPrefix(strings.TrimSpace(before), ".") && !strings.ContainsRune(strings.TrimSpace(before), ' ') {
		word = strings.TrimSpace(before)
		candidates = dotCommands
	} else {
		candidates = lint.SuggestWithTables(before, len(before), c.eng.Tables())
	}

	lower := word != "" && word == strings.ToLower(word)
	var out [][]rune
	for _, cand := range candidates {
		if len(cand) < len(word) || !strings.EqualFold(cand[:len(word)], word) {
			continue
		}
		suffix := cand[len(word):]
		if lower && cand == strings.ToUpper(cand) {
			suffix = strings.ToLower(suffix)
		}
		out = append(out, []rune(suffix+" "))
	}
	return out, len([]rune(word))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
