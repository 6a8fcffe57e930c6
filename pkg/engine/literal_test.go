package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{`'hello'`, "hello"},
		{`"double"`, "double"},
		{`'it\'s'`, "it's"},
		{`'a\nb'`, "a\nb"},
		{`'back\\'`, `back\`},
		{`'unterminated`, "unterminated"},
		{`''`, ""},
		{`42`, int64(42)},
		{`-7`, int64(-7)},
		{`+5`, int64(5)},
		{`3.25`, 3.25},
		{`.5`, 0.5},
		{`1e3`, 1000.0},
		{`NULL`, nil},
		{`TRUE`, true},
		{`FALSE`, false},
		{`CURRENT_DATE`, "CURRENT_DATE"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeLiteral(tt.raw))
		})
	}
}
