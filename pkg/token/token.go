// Package token defines the lexical tokens of the minisql dialect.
//
// The keyword sets, operators and punctuation declared here are the single
// source of truth for token classification: the tokenizer in pkg/parser
// and the editor grammar in pkg/highlight both derive from them.
package token

import "fmt"

// Kind classifies a token.
type Kind int

// Token kinds.
const (
	Keyword Kind = iota
	Identifier
	Operator
	String
	Number
	Punctuation
	Whitespace
	Comment
)

var kindNames = map[Kind]string{
	Keyword:     "keyword",
	Identifier:  "identifier",
	Operator:    "operator",
	String:      "string",
	Number:      "number",
	Punctuation: "punctuation",
	Whitespace:  "whitespace",
	Comment:     "comment",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", string(b))
}

// Token is a classified, position-tagged lexical unit.
type Token struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text"`
	Offset int    `json:"offset"` // 0-based byte offset of the first character
}

// End returns the offset immediately after the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// IsTrivia reports whether the token carries no syntax (whitespace or comment).
func (t Token) IsTrivia() bool {
	return t.Kind == Whitespace || t.Kind == Comment
}

// IsKeyword reports whether the token is the given uppercase keyword.
func (t Token) IsKeyword(word string) bool {
	return t.Kind == Keyword && t.Text == word
}

// IsPunct reports whether the token is the given punctuation character.
func (t Token) IsPunct(p string) bool {
	return t.Kind == Punctuation && t.Text == p
}
