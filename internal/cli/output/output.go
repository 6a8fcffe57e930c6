// Package output renders CLI results for terminals, pipes and scripts.
//
// A Renderer resolves the configured Mode against the destination: auto
// means styled text on a terminal and markdown otherwise. Colors follow
// the terminal's profile (termenv) and are stripped entirely for
// non-terminals and --no-color.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects an output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes formatted output.
type Renderer struct {
	w      io.Writer
	errW   io.Writer
	mode   Mode
	isTTY  bool
	lg     *lipgloss.Renderer
	styles Styles
}

// NewRenderer creates a renderer, detecting whether w is a terminal.
func NewRenderer(w, errW io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(w, errW, isTerminal(w), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(w, errW io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	lg := lipgloss.NewRenderer(w)
	if !isTTY {
		lg.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		w:      w,
		errW:   errW,
		mode:   mode,
		isTTY:  isTTY,
		lg:     lg,
		styles: newStyles(lg),
	}
}

// DisableColor forces the ASCII profile, e.g. for --no-color.
func (r *Renderer) DisableColor() *Renderer {
	r.lg.SetColorProfile(termenv.Ascii)
	r.styles = newStyles(r.lg)
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves ModeAuto: text on a terminal, markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Writer returns the output writer.
func (r *Renderer) Writer() io.Writer {
	return r.w
}

// ErrWriter returns the diagnostics writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errW
}

// Lipgloss returns the lipgloss renderer bound to the output, for callers
// that style their own text.
func (r *Renderer) Lipgloss() *lipgloss.Renderer {
	return r.lg
}

// Styles returns the style set.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Println writes a line.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.w, a...)
}

// Printf writes formatted text.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.w, format, a...)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Header writes a section title.
func (r *Renderer) Header(title string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println("## " + title)
		r.Println()
		return
	}
	r.Println(r.styles.Header1.Render(title))
}

// Success writes a success line.
func (r *Renderer) Success(msg string) {
	r.status(r.styles.Success, "✓", msg)
}

// Warning writes a warning line.
func (r *Renderer) Warning(msg string) {
	r.status(r.styles.Warning, "!", msg)
}

// Error writes an error line.
func (r *Renderer) Error(msg string) {
	r.status(r.styles.Error, "✗", msg)
}

// Hint writes a suggestion line.
func (r *Renderer) Hint(msg string) {
	r.status(r.styles.Info, "→", msg)
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

func (r *Renderer) status(style lipgloss.Style, icon, msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Printf("- %s %s\n", icon, msg)
		return
	}
	r.Printf("%s %s\n", style.Render(icon), msg)
}

// Table writes rows under header: a box table for text, a pipe table for
// markdown.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)

	hdr := make(table.Row, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	t.AppendHeader(hdr)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		r.Println()
		return
	}
	t.Render()
}

// KeyValue writes aligned "key: value" pairs.
func (r *Renderer) KeyValue(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}
	for _, p := range pairs {
		if r.EffectiveMode() == ModeMarkdown {
			r.Printf("- **%s**: %s\n", p[0], p[1])
			continue
		}
		r.Printf("  %s %s\n", r.styles.Bold.Render(p[0]+":"+strings.Repeat(" ", width-len(p[0]))), p[1])
	}
}

// FormatValue renders a row value for display.
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
