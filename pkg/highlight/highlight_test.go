package highlight

import (
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/leapstack-labs/minisql/pkg/token"
)

var samples = []string{
	"",
	"SELECT * FROM users",
	"select name, COUNT(*) from users where age >= 21 and note <> 'a\\'b' -- trailing\n",
	"INSERT INTO t (a, b) VALUES (-1.5e3, \"x\");\n\tDROP TABLE t",
	"SELECT @ # $ FROM users",
	"SELECT 'unterminated",
	"CREATE TABLE naïve (id INT)",
	"  \n\t ",
}

func concat(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestHighlight_RoundTrip(t *testing.T) {
	for _, src := range samples {
		t.Run(src, func(t *testing.T) {
			segs := Highlight(src)
			assert.Equal(t, src, concat(segs))

			pos := 0
			for _, s := range segs {
				assert.Equal(t, pos, s.Start, "segments must be contiguous")
				assert.Equal(t, s.Start+len(s.Text), s.End)
				pos = s.End
			}
		})
	}
}

func TestHighlight_Kinds(t *testing.T) {
	segs := Highlight("select id FROM t -- c")
	kinds := make([]string, len(segs))
	for i, s := range segs {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []string{
		"keyword", "whitespace", "identifier", "whitespace", "keyword",
		"whitespace", "identifier", "whitespace", "comment",
	}, kinds)
	assert.Equal(t, "select", segs[0].Text, "source spelling is kept")
	assert.Equal(t, DefaultTheme.Keyword, segs[0].Color)
	assert.Equal(t, DefaultTheme.Comment, segs[8].Color)
}

func TestHighlight_SkippedCharactersBecomeGaps(t *testing.T) {
	segs := HighlightWithTheme("a@b", DarkTheme)
	require.Len(t, segs, 3)
	assert.Equal(t, "@", segs[1].Text)
	assert.Equal(t, "whitespace", segs[1].Kind)
	assert.Equal(t, DarkTheme.Whitespace, segs[1].Color)
}

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"default", "DARK", "monochrome"} {
		_, ok := ThemeByName(name)
		assert.True(t, ok, name)
	}
	_, ok := ThemeByName("solarized")
	assert.False(t, ok)
	assert.Equal(t, []string{"dark", "default", "monochrome"}, ThemeNames())
}

// The grammar must classify every token the same way the tokenizer does.
func TestGrammar_AgreesWithTokenizer(t *testing.T) {
	rules := Grammar()
	require.NotEmpty(t, rules)
	compiled := make([]*regexp.Regexp, len(rules))
	for i, r := range rules {
		compiled[i] = regexp.MustCompile(`^(?:` + r.Pattern + `)`)
	}

	for _, src := range samples {
		for _, tok := range parser.Tokenize(src) {
			rest := src[tok.Offset:]
			matched := false
			for i, re := range compiled {
				loc := re.FindStringIndex(rest)
				if loc == nil || loc[1] == 0 {
					continue
				}
				assert.Equal(t, tok.Kind.String(), rules[i].Kind, "token %q in %q", tok.Text, src)
				assert.Equal(t, len(tok.Text), loc[1], "token %q in %q", tok.Text, src)
				matched = true
				break
			}
			assert.True(t, matched, "no grammar rule for %q", tok.Text)
		}
	}
}

func TestGrammarWithTheme(t *testing.T) {
	for _, r := range GrammarWithTheme(DarkTheme) {
		if r.Kind == token.Keyword.String() {
			assert.Equal(t, DarkTheme.Keyword, r.Color)
		}
	}
}

func TestRender(t *testing.T) {
	src := "SELECT 'multi\nline' FROM t\t-- done"
	segs := Highlight(src)

	plain := lipgloss.NewRenderer(io.Discard)
	plain.SetColorProfile(termenv.Ascii)
	assert.Equal(t, src, RenderWith(plain, segs, DefaultTheme))

	color := lipgloss.NewRenderer(io.Discard)
	color.SetColorProfile(termenv.TrueColor)
	out := RenderWith(color, segs, DarkTheme)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "SELECT")
}

func TestRenderHTML(t *testing.T) {
	out := RenderHTML(Highlight("SELECT '<b>' FROM t"))
	assert.Contains(t, out, `<span class="sql-keyword" style="color:#0000FF">SELECT</span>`)
	assert.Contains(t, out, "&#39;&lt;b&gt;&#39;")
	assert.NotContains(t, out, "<b>")

	mono := RenderHTML(HighlightWithTheme("SELECT 1", MonochromeTheme))
	assert.Equal(t, "SELECT 1", mono)
}

func TestLegend(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	assert.Equal(t, "Keyword Identifier String Number Operator Punctuation Comment", Legend(r, DefaultTheme))
}
