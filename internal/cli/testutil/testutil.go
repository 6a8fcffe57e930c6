// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/minisql/internal/cli/output"
)

// WriteSQLFile writes a .sql file into dir and returns its path.
func WriteSQLFile(t *testing.T, dir, name, sql string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sql), 0o600); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the combined stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
