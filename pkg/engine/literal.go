package engine

import (
	"strconv"
	"strings"
)

// decodeLiteral converts the raw text of an INSERT literal into a row value.
//
//	'text' / "text"  → string with quotes stripped and escapes resolved
//	42 / -7          → int64
//	3.14 / 1e3       → float64
//	NULL             → nil
//	TRUE / FALSE     → bool
//
// Anything else (bare identifiers, keywords) is kept as written.
func decodeLiteral(raw string) any {
	if raw == "" {
		return ""
	}
	if q := raw[0]; q == '\'' || q == '"' {
		body := raw[1:]
		if len(body) > 0 && body[len(body)-1] == q && !escapedAt(body, len(body)-1) {
			body = body[:len(body)-1]
		}
		return unescape(body)
	}

	switch strings.ToUpper(raw) {
	case "NULL":
		return nil
	case "TRUE":
		return true
	case "FALSE":
		return false
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// escapedAt reports whether the byte at i is preceded by an odd number of
// backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// unescape resolves backslash escapes. \n, \t and \r map to control
// characters; any other escaped character stands for itself.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
