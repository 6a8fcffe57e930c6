package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group string // Filter by group
}

// ruleJSON is the JSON form of one rule.
type ruleJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Statements  []string `json:"statements,omitempty"`
}

func toRuleJSON(rule lint.RuleDef) ruleJSON {
	info := rule.Info()
	return ruleJSON{
		ID:          info.ID,
		Name:        info.Name,
		Group:       info.Group,
		Severity:    rule.Severity.String(),
		Description: info.Description,
		Statements:  info.Statements,
	}
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List validation rules",
		Long: `List the rules the validator applies, grouped by category.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  minisql rules

  # Show one rule
  minisql rules UD03

  # List rules in the create group
  minisql rules --group create`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := NewCommandContext(cmd).Renderer
			if len(args) > 0 {
				return showRule(r, args[0])
			}
			return listRules(r, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	return cmd
}

func listRules(r *output.Renderer, opts *RulesOptions) error {
	rules := lint.GetAll()
	if opts.Group != "" {
		rules = lint.GetByGroup(opts.Group)
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Group != rules[j].Group {
			return rules[i].Group < rules[j].Group
		}
		return rules[i].ID < rules[j].ID
	})

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]ruleJSON, len(rules))
		for i, rule := range rules {
			out[i] = toRuleJSON(rule)
		}
		return r.JSON(map[string]any{"rules": out, "count": len(out)})
	}

	title := cases.Title(language.English)
	markdown := r.EffectiveMode() == output.ModeMarkdown
	styles := r.Styles()

	r.Header(fmt.Sprintf("Validation Rules (%d)", len(rules)))
	group := ""
	for _, rule := range rules {
		if rule.Group != group {
			group = rule.Group
			if markdown {
				r.Println()
				r.Println("### " + title.String(group))
				r.Println()
			} else {
				r.Println()
				r.Println(styles.Bold.Render("  " + title.String(group)))
			}
		}
		if markdown {
			r.Printf("- **%s** %s (`%s`)\n", rule.ID, rule.Name, rule.Severity)
			continue
		}
		r.Printf("    %s  %s - %s\n",
			styles.Muted.Render(rule.ID),
			rule.Name,
			severityStyle(styles, rule).Render(rule.Severity.String()),
		)
	}
	if !markdown {
		r.Println()
		r.Muted("Use 'minisql rules <rule-id>' for details")
	}
	return nil
}

func showRule(r *output.Renderer, id string) error {
	rule, ok := lint.GetByID(strings.ToUpper(id))
	if !ok {
		return fmt.Errorf("rule %q not found", id)
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(toRuleJSON(rule))
	}

	info := rule.Info()
	statements := "all"
	if len(info.Statements) > 0 {
		statements = strings.Join(info.Statements, ", ")
	}
	r.Header(fmt.Sprintf("%s - %s", rule.ID, rule.Name))
	r.KeyValue([][2]string{
		{"Group", rule.Group},
		{"Severity", rule.Severity.String()},
		{"Statements", statements},
		{"Description", rule.Description},
	})
	return nil
}

func severityStyle(styles output.Styles, rule lint.RuleDef) lipgloss.Style {
	switch rule.Severity {
	case lint.SeverityError:
		return styles.Error
	case lint.SeverityWarning:
		return styles.Warning
	}
	return styles.Info
}
