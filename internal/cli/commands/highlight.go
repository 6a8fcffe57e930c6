package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/pkg/highlight"
)

// HighlightOptions holds options for the highlight command.
type HighlightOptions struct {
	File    string
	HTML    bool
	Grammar bool
	Legend  bool
}

// NewHighlightCommand creates the highlight command.
func NewHighlightCommand() *cobra.Command {
	opts := &HighlightOptions{}
	cmd := &cobra.Command{
		Use:   "highlight [SQL]",
		Short: "Print SQL with syntax colors",
		Long: `Print SQL with syntax colors from the selected --theme.

--html writes <span> markup instead of terminal colors, --grammar prints
the editor grammar (token patterns and colors) as JSON, and --legend
prints one sample per token kind. With -o json the colored segments are
printed.`,
		Example: `  minisql highlight "SELECT name FROM users WHERE id = 1"
  minisql highlight --theme dark --file query.sql
  minisql highlight --html "SELECT 1" > query.html
  minisql highlight --grammar`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			r := cmdCtx.Renderer

			switch {
			case opts.Grammar:
				return r.JSON(highlight.GrammarWithTheme(cmdCtx.Theme))
			case opts.Legend:
				r.Println(highlight.Legend(r.Lipgloss(), cmdCtx.Theme))
				return nil
			}

			sql, err := readSQL(cmd, args, opts.File)
			if err != nil {
				return err
			}
			segs := highlight.HighlightWithTheme(sql, cmdCtx.Theme)

			switch {
			case opts.HTML:
				r.Println(`<pre class="sql">` + highlight.RenderHTML(segs) + `</pre>`)
			case r.EffectiveMode() == output.ModeJSON:
				return r.JSON(segs)
			case r.EffectiveMode() == output.ModeMarkdown:
				r.Println("```sql")
				r.Println(sql)
				r.Println("```")
			default:
				r.Println(highlight.RenderWith(r.Lipgloss(), segs, cmdCtx.Theme))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read SQL from file")
	cmd.Flags().BoolVar(&opts.HTML, "html", false, "Write HTML spans")
	cmd.Flags().BoolVar(&opts.Grammar, "grammar", false, "Print the editor grammar as JSON")
	cmd.Flags().BoolVar(&opts.Legend, "legend", false, "Print a sample of each token color")
	cmd.MarkFlagsMutuallyExclusive("html", "grammar", "legend")
	return cmd
}
