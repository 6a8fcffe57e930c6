package highlight

import "github.com/leapstack-labs/minisql/pkg/token"

// GrammarRule is one entry of the editor grammar: a regular expression for
// a token kind, tried in order.
type GrammarRule struct {
	Kind    string `json:"kind"`
	Pattern string `json:"pattern"`
	Color   string `json:"color,omitempty"`
}

// Grammar returns the classification rules as regular expressions, in
// priority order.
func Grammar() []GrammarRule {
	return GrammarWithTheme(Theme{})
}

// GrammarWithTheme is Grammar with each rule carrying its theme color.
func GrammarWithTheme(theme Theme) []GrammarRule {
	rules := token.Rules()
	out := make([]GrammarRule, len(rules))
	for i, r := range rules {
		out[i] = GrammarRule{
			Kind:    r.Kind.String(),
			Pattern: r.Pattern,
			Color:   theme.Color(r.Kind),
		}
	}
	return out
}
