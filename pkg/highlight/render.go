package highlight

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/minisql/pkg/token"
)

// Render returns segs as a string with ANSI colors for the current
// terminal, as detected by lipgloss.
func Render(segs []Segment, theme Theme) string {
	return RenderWith(lipgloss.DefaultRenderer(), segs, theme)
}

// RenderWith is Render using an explicit renderer, e.g. one forced to the
// ASCII profile for --no-color.
func RenderWith(r *lipgloss.Renderer, segs []Segment, theme Theme) string {
	styles := make(map[string]lipgloss.Style)
	var b strings.Builder
	for _, seg := range segs {
		if seg.Kind == token.Whitespace.String() {
			b.WriteString(seg.Text)
			continue
		}
		style, ok := styles[seg.Kind+seg.Color]
		if !ok {
			style = r.NewStyle().TabWidth(lipgloss.NoTabConversion)
			if seg.Color != "" {
				style = style.Foreground(lipgloss.Color(seg.Color))
			}
			if theme.BoldKeywords && seg.Kind == token.Keyword.String() {
				style = style.Bold(true)
			}
			styles[seg.Kind+seg.Color] = style
		}
		// styles pad multi-line text to a block, so render line by line
		for i, line := range strings.Split(seg.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}

// RenderHTML returns segs as HTML spans with inline colors. Whitespace is
// written unwrapped; the caller supplies the enclosing <pre>.
func RenderHTML(segs []Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		text := html.EscapeString(seg.Text)
		if seg.Kind == token.Whitespace.String() || seg.Color == "" {
			b.WriteString(text)
			continue
		}
		b.WriteString(`<span class="sql-`)
		b.WriteString(seg.Kind)
		b.WriteString(`" style="color:`)
		b.WriteString(seg.Color)
		b.WriteString(`">`)
		b.WriteString(text)
		b.WriteString(`</span>`)
	}
	return b.String()
}

var legendKinds = []token.Kind{
	token.Keyword, token.Identifier, token.String, token.Number,
	token.Operator, token.Punctuation, token.Comment,
}

// Legend renders one colored sample per token kind, e.g. "Keyword Identifier ...".
func Legend(r *lipgloss.Renderer, theme Theme) string {
	title := cases.Title(language.English)
	parts := make([]string, len(legendKinds))
	for i, kind := range legendKinds {
		style := r.NewStyle()
		if c := theme.Color(kind); c != "" {
			style = style.Foreground(lipgloss.Color(c))
		}
		parts[i] = style.Render(title.String(kind.String()))
	}
	return strings.Join(parts, " ")
}
