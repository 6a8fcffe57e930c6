package token

import (
	"regexp"
	"sort"
	"strings"
)

// Operators lists the operator spellings, longest first. A scanner must try
// them in order so two-character operators win over their prefixes.
var Operators = []string{"<=", ">=", "<>", "!=", "=", "<", ">", "+", "-", "*", "/", "%"}

// PunctuationSymbols lists the single-character punctuation tokens.
var PunctuationSymbols = []string{"(", ")", ",", ";", "."}

// Rule describes how one token kind is recognized, as a regular expression.
// Rules are ordered by priority: the first rule matching at a position wins.
type Rule struct {
	Kind    Kind   `json:"kind"`
	Pattern string `json:"pattern"`
}

// Rules returns the classification table in priority order. The tokenizer is
// a hand-written scanner over the same sets; the table exists for consumers
// that need regular expressions, such as editor widgets.
func Rules() []Rule {
	words := append(Keywords(), DataTypes()...)
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})

	return []Rule{
		{Kind: Whitespace, Pattern: `[ \t\r\n]+`},
		{Kind: Comment, Pattern: `--[^\n]*`},
		{Kind: String, Pattern: `'(?:\\(?s:.)?|[^'\\])*'?|"(?:\\(?s:.)?|[^"\\])*"?`},
		{Kind: Number, Pattern: `(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`},
		{Kind: Keyword, Pattern: `(?i:` + strings.Join(words, "|") + `)\b`},
		{Kind: Identifier, Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Kind: Operator, Pattern: alternation(Operators)},
		{Kind: Punctuation, Pattern: alternation(PunctuationSymbols)},
	}
}

func alternation(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(quoted, "|")
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
