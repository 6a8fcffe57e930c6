package lint

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/minisql/pkg/token"
)

// MaxSuggestions caps the number of completions returned.
const MaxSuggestions = 10

// statementStarters are offered on empty input.
var statementStarters = []string{
	"SELECT", "INSERT INTO", "UPDATE", "DELETE FROM", "CREATE TABLE", "DROP TABLE", "ALTER TABLE",
}

// followers maps the last complete word before the cursor to likely next
// words. "" marks positions where a table name is expected.
var followers = map[string][]string{
	"CREATE":  {"TABLE", "DATABASE", "INDEX", "VIEW"},
	"DROP":    {"TABLE", "DATABASE", "INDEX", "VIEW"},
	"ALTER":   {"TABLE"},
	"INSERT":  {"INTO"},
	"DELETE":  {"FROM"},
	"SELECT":  {"*", "DISTINCT", "COUNT(*)", "SUM(", "AVG(", "MIN(", "MAX("},
	"WHERE":   {"NOT", "EXISTS", "IN", "LIKE", "BETWEEN", "IS NULL", "IS NOT NULL", "=", "<>", "AND", "OR"},
	"AND":     {"NOT", "EXISTS", "IN", "LIKE", "BETWEEN", "IS NULL", "IS NOT NULL"},
	"OR":      {"NOT", "EXISTS", "IN", "LIKE", "BETWEEN", "IS NULL", "IS NOT NULL"},
	"NOT":     {"NULL", "EXISTS", "IN", "LIKE", "BETWEEN"},
	"IS":      {"NULL", "NOT NULL"},
	"ORDER":   {"BY"},
	"GROUP":   {"BY"},
	"BY":      {"ASC", "DESC"},
	"PRIMARY": {"KEY"},
	"FOREIGN": {"KEY"},
	"VALUES":  {"("},
	"SET":     nil,
	"FROM":    {""},
	"INTO":    {""},
	"UPDATE":  {""},
	"TABLE":   {"IF NOT EXISTS", ""},
	"JOIN":    {""},
}

// clauseFollowers is used when the cursor sits after a name rather than a
// keyword: the last clause keyword decides what can come next.
var clauseFollowers = map[string][]string{
	"SELECT": {"FROM"},
	"FROM":   {"WHERE", "ORDER BY", "GROUP BY", "LIMIT", "JOIN"},
	"JOIN":   {"ON", "WHERE"},
	"UPDATE": {"SET"},
	"SET":    {"WHERE"},
	"WHERE":  {"AND", "OR", "ORDER BY", "LIMIT"},
	"AND":    {"AND", "OR", "ORDER BY", "LIMIT"},
	"OR":     {"AND", "OR", "ORDER BY", "LIMIT"},
	"INTO":   {"VALUES", "("},
	"TABLE":  {"("},
	"ORDER":  {"ASC", "DESC", "LIMIT"},
	"GROUP":  {"HAVING", "ORDER BY", "LIMIT"},
}

var clauseKeywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "UPDATE", "SET", "INTO", "TABLE",
	"GROUP", "ORDER", "AND", "OR",
}

var clausePatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(clauseKeywords))
	for _, kw := range clauseKeywords {
		m[kw] = regexp.MustCompile(`\b` + kw + `\b`)
	}
	return m
}()

// Suggest returns completions for the text before cursor. Text after the
// cursor is ignored.
func Suggest(text string, cursor int) []string {
	return SuggestWithTables(text, cursor, nil)
}

// SuggestWithTables is Suggest with known table names offered wherever a
// table name is expected.
func SuggestWithTables(text string, cursor int, tables []string) []string {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	before := text[:cursor]
	upper := strings.ToUpper(before)

	if strings.TrimSpace(before) == "" {
		return capped(statementStarters)
	}

	// Mid-word: complete the partial word.
	if prefix := currentWord(before); prefix != "" {
		return completeWord(strings.ToUpper(prefix), tables)
	}

	fields := strings.Fields(upper)
	last := strings.TrimRight(fields[len(fields)-1], ",;(")
	if next, ok := followers[last]; ok {
		return capped(expandTables(next, tables))
	}
	return capped(clauseFollowers[findLastClauseKeyword(upper)])
}

// currentWord returns the identifier characters directly before the end of
// before, or "" when before ends in whitespace or punctuation.
func currentWord(before string) string {
	start := len(before)
	for start > 0 && isIdentChar(before[start-1]) {
		start--
	}
	return before[start:]
}

func completeWord(prefix string, tables []string) []string {
	var out []string
	for _, t := range tables {
		if strings.HasPrefix(strings.ToUpper(t), prefix) && !strings.EqualFold(t, prefix) {
			out = append(out, t)
		}
	}
	for _, list := range [][]string{token.Keywords(), token.DataTypes()} {
		for _, kw := range list {
			if strings.HasPrefix(kw, prefix) && kw != prefix {
				out = append(out, kw)
			}
		}
	}
	return capped(out)
}

// expandTables replaces "" placeholders with the known table names.
func expandTables(words, tables []string) []string {
	var out []string
	for _, w := range words {
		if w == "" {
			out = append(out, tables...)
			continue
		}
		out = append(out, w)
	}
	return out
}

// findLastClauseKeyword returns the clause keyword that appears last in
// upper, or "".
func findLastClauseKeyword(upper string) string {
	lastPos := -1
	lastKeyword := ""
	for _, kw := range clauseKeywords {
		matches := clausePatterns[kw].FindAllStringIndex(upper, -1)
		if len(matches) == 0 {
			continue
		}
		if m := matches[len(matches)-1]; m[0] > lastPos {
			lastPos = m[0]
			lastKeyword = kw
		}
	}
	return lastKeyword
}

// capped deduplicates words preserving order and truncates to MaxSuggestions.
func capped(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_'
}
