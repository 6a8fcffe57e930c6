package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/internal/state"
	"github.com/leapstack-labs/minisql/pkg/engine"
)

// ExecOptions holds options for the exec command.
type ExecOptions struct {
	File        string
	Load        string
	Save        string
	History     bool
	StopOnError bool
}

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	opts := &ExecOptions{}
	cmd := &cobra.Command{
		Use:   "exec [SQL...]",
		Short: "Execute statements against an in-memory store",
		Long: `Execute SQL statements one by one against a fresh in-memory store.

Statements come from the arguments, --file or stdin and are split at
semicolons. Use --load to start from a snapshot file and --save to write
the resulting tables to one. Snapshot files ending in .yaml or .yml are
YAML; others use the configured snapshot format.`,
		Example: `  minisql exec "CREATE TABLE users (id INT PRIMARY KEY, name TEXT)" \
               "INSERT INTO users VALUES (1, 'Alice')" \
               "SELECT * FROM users"
  minisql exec --file seed.sql --save users.json
  minisql exec --load users.json "SELECT * FROM users" -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read statements from file")
	cmd.Flags().StringVar(&opts.Load, "load", "", "Load tables from a snapshot file before executing")
	cmd.Flags().StringVar(&opts.Save, "save", "", "Save tables to a snapshot file after executing")
	cmd.Flags().BoolVar(&opts.History, "history", false, "Record statements in the state database history")
	cmd.Flags().BoolVar(&opts.StopOnError, "stop-on-error", false, "Stop at the first failing statement")
	return cmd
}

func runExec(cmd *cobra.Command, args []string, opts *ExecOptions) error {
	var stmts []string
	if len(args) > 0 {
		for _, arg := range args {
			stmts = append(stmts, splitStatements(arg)...)
		}
	} else {
		text, err := readSQL(cmd, nil, opts.File)
		if err != nil {
			return err
		}
		stmts = splitStatements(text)
	}
	if len(stmts) == 0 {
		return errNoInput
	}

	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	engCfg := engine.Config{Logger: cmdCtx.Logger}
	if opts.History {
		store, err := openStore(cfg, cmdCtx.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		engCfg.OnExecute = historyHook(cmd.Context(), store, "cli-"+uuid.NewString(), cmdCtx.Logger)
	}
	eng := engine.New(engCfg)

	if opts.Load != "" {
		if err := loadSnapshotFile(eng, opts.Load, cfg.Snapshot.Format); err != nil {
			return err
		}
		cmdCtx.Logger.Debug("loaded snapshot", "file", opts.Load, "tables", len(eng.Tables()))
	}

	results, failed := executeAll(cmdCtx.Renderer, eng, stmts, opts.StopOnError)
	if cmdCtx.Renderer.EffectiveMode() == output.ModeJSON {
		if err := cmdCtx.Renderer.JSON(results); err != nil {
			return err
		}
	}

	if opts.Save != "" {
		if err := saveSnapshotFile(eng, opts.Save, cfg.Snapshot.Format); err != nil {
			return err
		}
		if cmdCtx.Renderer.EffectiveMode() != output.ModeJSON {
			cmdCtx.Renderer.Muted("Saved snapshot to " + opts.Save)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(results))
	}
	return nil
}

// executeAll runs stmts in order. Text and markdown results are written as
// they complete; JSON results are returned for the caller to encode as one
// array.
func executeAll(r *output.Renderer, eng *engine.Engine, stmts []string, stopOnError bool) ([]*engine.Result, int) {
	results := make([]*engine.Result, 0, len(stmts))
	failed := 0
	for i, sql := range stmts {
		res := eng.Execute(sql)
		results = append(results, res)
		if !res.Success {
			failed++
		}
		if r.EffectiveMode() != output.ModeJSON {
			if len(stmts) > 1 {
				if i > 0 {
					r.Println()
				}
				r.Muted(sql)
			}
			_ = renderResult(r, res)
		}
		if !res.Success && stopOnError {
			break
		}
	}
	return results, failed
}

// historyHook records each executed statement in the state store.
func historyHook(ctx context.Context, store state.Store, sessionID string, logger *slog.Logger) engine.ExecuteHook {
	return func(sql string, res *engine.Result) {
		err := store.RecordHistory(ctx, state.HistoryEntry{
			SessionID:    sessionID,
			SQL:          sql,
			Success:      res.Success,
			RowsAffected: res.RowsAffected,
			Error:        res.Error,
			Duration:     res.ExecutionTime,
		})
		if err != nil {
			logger.Warn("failed to record history", "session_id", sessionID, "error", err)
		}
	}
}
