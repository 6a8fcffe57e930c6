package highlight

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/minisql/pkg/token"
)

// Theme maps token kinds to colors. Colors are hex strings; an empty color
// means the terminal or page default.
type Theme struct {
	Name        string `json:"name"`
	Keyword     string `json:"keyword"`
	Identifier  string `json:"identifier"`
	String      string `json:"string"`
	Number      string `json:"number"`
	Operator    string `json:"operator"`
	Comment     string `json:"comment"`
	Punctuation string `json:"punctuation"`
	Whitespace  string `json:"whitespace"`
	Error       string `json:"error"`
	// BoldKeywords renders keywords in bold.
	BoldKeywords bool `json:"boldKeywords"`
}

// Built-in themes.
var (
	DefaultTheme = Theme{
		Name:        "default",
		Keyword:     "#0000FF",
		Identifier:  "#001080",
		String:      "#A31515",
		Number:      "#098658",
		Operator:    "#000000",
		Comment:     "#008000",
		Punctuation: "#000000",
		Whitespace:  "#000000",
		Error:       "#FF0000",
	}

	DarkTheme = Theme{
		Name:        "dark",
		Keyword:     "#569CD6",
		Identifier:  "#9CDCFE",
		String:      "#CE9178",
		Number:      "#B5CEA8",
		Operator:    "#D4D4D4",
		Comment:     "#6A9955",
		Punctuation: "#D4D4D4",
		Whitespace:  "#D4D4D4",
		Error:       "#F44747",
	}

	MonochromeTheme = Theme{
		Name:         "monochrome",
		BoldKeywords: true,
	}
)

var themes = map[string]Theme{
	DefaultTheme.Name:    DefaultTheme,
	DarkTheme.Name:       DarkTheme,
	MonochromeTheme.Name: MonochromeTheme,
}

// ThemeByName looks up a built-in theme (case-insensitive).
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(name)]
	return t, ok
}

// ThemeNames returns the names of the built-in themes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Color returns the color for a token kind.
func (t Theme) Color(kind token.Kind) string {
	switch kind {
	case token.Keyword:
		return t.Keyword
	case token.Identifier:
		return t.Identifier
	case token.String:
		return t.String
	case token.Number:
		return t.Number
	case token.Operator:
		return t.Operator
	case token.Comment:
		return t.Comment
	case token.Punctuation:
		return t.Punctuation
	default:
		return t.Whitespace
	}
}
