package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/pkg/engine"
	"github.com/leapstack-labs/minisql/pkg/lint"
	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/leapstack-labs/minisql/pkg/token"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var file string
	var all bool

	cmd := &cobra.Command{
		Use:   "tokens [SQL]",
		Short: "Show the tokens of a statement",
		Long: `Tokenize SQL and print each token with its kind and byte offset.

Whitespace is hidden unless --all is given.`,
		Example: `  minisql tokens "SELECT id FROM users"
  minisql tokens --all --file query.sql
  echo "SELECT 1" | minisql tokens -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readSQL(cmd, args, file)
			if err != nil {
				return err
			}
			cmdCtx := NewCommandContext(cmd)
			return renderTokens(cmdCtx.Renderer, parser.Tokenize(sql), all)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SQL from file")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include whitespace tokens")
	return cmd
}

func renderTokens(r *output.Renderer, tokens []token.Token, all bool) error {
	shown := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if all || tok.Kind != token.Whitespace {
			shown = append(shown, tok)
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(shown)
	}
	rows := make([][]string, len(shown))
	for i, tok := range shown {
		rows[i] = []string{tok.Kind.String(), fmt.Sprintf("%q", tok.Text), fmt.Sprint(tok.Offset)}
	}
	r.Table([]string{"Kind", "Text", "Offset"}, rows)
	return nil
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse [SQL]",
		Short: "Parse a statement and print it as JSON",
		Long: `Parse the first statement of the input and print the parsed form as JSON.

Exits with an error when the statement does not parse.`,
		Example: `  minisql parse "CREATE TABLE users (id INT PRIMARY KEY, name TEXT)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readSQL(cmd, args, file)
			if err != nil {
				return err
			}
			cmdCtx := NewCommandContext(cmd)
			res := parser.Parse(sql)
			if err := cmdCtx.Renderer.JSON(res); err != nil {
				return err
			}
			if !res.Valid {
				return res.Err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SQL from file")
	return cmd
}

// NewPlanCommand creates the plan command.
func NewPlanCommand() *cobra.Command {
	var file, load string

	cmd := &cobra.Command{
		Use:   "plan [SQL]",
		Short: "Estimate the work a statement would do",
		Long: `Show the operation, target table, estimated rows and cost of a statement
without executing it. Use --load to plan against the tables of a snapshot.`,
		Example: `  minisql plan "SELECT * FROM users"
  minisql plan --load users.json "DELETE FROM users"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readSQL(cmd, args, file)
			if err != nil {
				return err
			}
			cmdCtx := NewCommandContext(cmd)
			eng := engine.New(engine.Config{Logger: cmdCtx.Logger})
			if load != "" {
				if err := loadSnapshotFile(eng, load, cmdCtx.Cfg.Snapshot.Format); err != nil {
					return err
				}
			}
			return renderPlan(cmdCtx.Renderer, eng.Plan(sql))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SQL from file")
	cmd.Flags().StringVar(&load, "load", "", "Load tables from a snapshot file first")
	return cmd
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand() *cobra.Command {
	var (
		file   string
		cursor int
		tables []string
	)

	cmd := &cobra.Command{
		Use:   "suggest [SQL]",
		Short: "Suggest completions at a cursor position",
		Long: `Suggest keywords, data types and table names that fit at the cursor.

The cursor is a byte offset into the input and defaults to its end.`,
		Example: `  minisql suggest "SELECT * FROM users "
  minisql suggest --cursor 3 "SEL"
  minisql suggest --tables users,orders "SELECT * FROM "`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readSQL(cmd, args, file)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cursor") {
				cursor = len(sql)
			}
			cmdCtx := NewCommandContext(cmd)
			suggestions := lint.SuggestWithTables(sql, cursor, tables)

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string][]string{"suggestions": suggestions})
			}
			for _, s := range suggestions {
				if r.EffectiveMode() == output.ModeMarkdown {
					r.Println("- " + s)
					continue
				}
				r.Println(s)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SQL from file")
	cmd.Flags().IntVarP(&cursor, "cursor", "c", 0, "Cursor byte offset (default: end of input)")
	cmd.Flags().StringSliceVar(&tables, "tables", nil, "Table names to offer after FROM, INTO, UPDATE and JOIN")
	return cmd
}
