package highlight

import (
	"github.com/leapstack-labs/minisql/pkg/parser"
	"github.com/leapstack-labs/minisql/pkg/token"
)

// KindError marks the single segment produced when tokenizing fails.
const KindError = "error"

// Segment is a colored run of source text. Start and End are byte offsets
// into the source; Kind is a token kind name or KindError.
type Segment struct {
	Text  string `json:"text"`
	Color string `json:"color"`
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Highlight segments text using the default theme.
func Highlight(text string) []Segment {
	return HighlightWithTheme(text, DefaultTheme)
}

// HighlightWithTheme segments text using theme. It never panics: a fault
// in the tokenizer yields one error-colored segment covering the input.
func HighlightWithTheme(text string, theme Theme) (segs []Segment) {
	defer func() {
		if r := recover(); r != nil {
			segs = []Segment{{
				Text:  text,
				Color: theme.Error,
				Kind:  KindError,
				Start: 0,
				End:   len(text),
			}}
		}
	}()

	tokens := parser.Tokenize(text)
	segs = make([]Segment, 0, len(tokens))
	pos := 0
	for _, tok := range tokens {
		if tok.Offset > pos {
			segs = append(segs, gap(text, pos, tok.Offset, theme))
		}
		end := tok.End()
		segs = append(segs, Segment{
			// keywords are uppercased by the tokenizer; keep the source spelling
			Text:  text[tok.Offset:end],
			Color: theme.Color(tok.Kind),
			Kind:  tok.Kind.String(),
			Start: tok.Offset,
			End:   end,
		})
		pos = end
	}
	if pos < len(text) {
		segs = append(segs, gap(text, pos, len(text), theme))
	}
	return segs
}

// gap covers characters the tokenizer skipped.
func gap(text string, start, end int, theme Theme) Segment {
	return Segment{
		Text:  text[start:end],
		Color: theme.Whitespace,
		Kind:  token.Whitespace.String(),
		Start: start,
		End:   end,
	}
}
