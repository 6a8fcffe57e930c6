package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/internal/watch"
	"github.com/leapstack-labs/minisql/pkg/lint"
)

// errInvalid is returned by validate when the input has errors.
var errInvalid = errors.New("validation failed")

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	File  string
	Watch bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [SQL]",
		Short: "Check a statement for errors, warnings and suggestions",
		Long: `Validate SQL without executing it.

Reports errors (which would block execution), warnings for risky
statements and style suggestions. Exits with an error when the
statement is invalid.

With --watch, the --file path (a .sql file or a directory) is
re-validated every time a .sql file under it changes.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  minisql validate "DELETE FROM users"
  minisql validate --file schema.sql -o json
  minisql validate --watch --file queries/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Watch {
				return runValidateWatch(cmd, opts)
			}
			sql, err := readSQL(cmd, args, opts.File)
			if err != nil {
				return err
			}
			cmdCtx := NewCommandContext(cmd)
			res := lint.Validate(sql)
			if err := renderValidation(cmdCtx.Renderer, res); err != nil {
				return err
			}
			if !res.Valid {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read SQL from file")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-validate when .sql files under --file change")
	return cmd
}

func runValidateWatch(cmd *cobra.Command, opts *ValidateOptions) error {
	if opts.File == "" {
		return errors.New("--watch requires --file")
	}
	cmdCtx := NewCommandContext(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := cmdCtx.Renderer
	r.Muted(fmt.Sprintf("Watching %s (Ctrl+C to stop)", opts.File))
	return watchValidate(ctx, cmdCtx, opts.File, r)
}

// watchValidate validates each changed file until ctx is cancelled.
func watchValidate(ctx context.Context, cmdCtx *CommandContext, path string, r *output.Renderer) error {
	var mu sync.Mutex // reports for different files must not interleave
	return watch.Watch(ctx, watch.Config{Path: path, Logger: cmdCtx.Logger}, func(file string) {
		content, err := os.ReadFile(file)
		if err != nil {
			cmdCtx.Logger.Warn("failed to read changed file", "file", file, "error", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		r.Header(file)
		_ = renderValidation(r, lint.Validate(string(content)))
	})
}
