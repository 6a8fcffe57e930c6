package parser

import (
	"strings"

	"github.com/leapstack-labs/minisql/pkg/token"
)

// Lexer tokenizes SQL input. It never fails: characters that start no token
// are skipped.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// Next returns the next token and true, or false at end of input.
func (l *Lexer) Next() (token.Token, bool) {
	for !l.atEOF() {
		start := l.pos

		switch {
		case isSpace(l.ch):
			for !l.atEOF() && isSpace(l.ch) {
				l.readChar()
			}
			return l.emit(token.Whitespace, start), true

		case l.ch == '-' && l.peekChar() == '-':
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
			return l.emit(token.Comment, start), true

		case l.ch == '\'' || l.ch == '"':
			l.readString(l.ch)
			return l.emit(token.String, start), true

		case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
			l.readNumber()
			return l.emit(token.Number, start), true

		case isLetter(l.ch) || l.ch == '_':
			for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch) || l.ch == '_') {
				l.readChar()
			}
			word := l.input[start:l.pos]
			if upper, ok := token.Lookup(word); ok {
				return token.Token{Kind: token.Keyword, Text: upper, Offset: start}, true
			}
			return l.emit(token.Identifier, start), true
		}

		if tok, ok := l.matchSymbol(token.Operators, token.Operator); ok {
			return tok, true
		}
		if tok, ok := l.matchSymbol(token.PunctuationSymbols, token.Punctuation); ok {
			return tok, true
		}

		// Unknown character: skip it.
		l.readChar()
	}
	return token.Token{}, false
}

func (l *Lexer) emit(kind token.Kind, start int) token.Token {
	return token.Token{Kind: kind, Text: l.input[start:l.pos], Offset: start}
}

// matchSymbol consumes the first entry of symbols found at the current
// position. symbols must be ordered longest first.
func (l *Lexer) matchSymbol(symbols []string, kind token.Kind) (token.Token, bool) {
	rest := l.input[l.pos:]
	for _, sym := range symbols {
		if strings.HasPrefix(rest, sym) {
			start := l.pos
			for range sym {
				l.readChar()
			}
			return l.emit(kind, start), true
		}
	}
	return token.Token{}, false
}

// readString consumes a quoted string including its delimiters. A backslash
// protects the following character. An unterminated string runs to the end
// of input.
func (l *Lexer) readString(quote byte) {
	l.readChar() // opening quote
	for !l.atEOF() {
		switch l.ch {
		case '\\':
			l.readChar()
			if !l.atEOF() {
				l.readChar()
			}
		case quote:
			l.readChar()
			return
		default:
			l.readChar()
		}
	}
}

// readNumber consumes digits with at most one decimal point and an optional
// exponent (1e10, 2.5E-3).
func (l *Lexer) readNumber() {
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		switch {
		case isDigit(next):
			l.readChar()
		case (next == '+' || next == '-') && l.readPos+1 < len(l.input) && isDigit(l.input[l.readPos+1]):
			l.readChar()
			l.readChar()
		default:
			return
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns every token in input, including whitespace and comments.
func Tokenize(input string) []token.Token {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// significant drops whitespace and comment tokens.
func significant(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}
