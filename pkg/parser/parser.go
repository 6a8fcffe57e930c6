// Package parser provides the minisql tokenizer and statement parser.
//
// # Usage
//
//	res := parser.Parse("CREATE TABLE t (id INT PRIMARY KEY)")
//	if !res.Valid {
//	    // res.Err describes the expected token
//	}
//	stmt := res.Stmt.(*parser.CreateTableStmt)
//
// # Grammar Overview
//
// The parser is a hand-written, single pass over the significant tokens of
// the first statement in the input (everything up to the first ';'):
//
//	create  → CREATE TABLE [IF NOT EXISTS] name ( element (, element)* )
//	element → column [type] constraint* | table_constraint
//	insert  → INSERT INTO name [( column (, column)* )] VALUES ( literal (, literal)* )
//	select  → SELECT projection FROM name tail
//	update  → UPDATE name tail
//	delete  → DELETE FROM name tail
//	drop    → DROP TABLE [IF EXISTS] name tail
//	alter   → ALTER TABLE name tail
//
// Parse never panics and never returns an error value: failures are reported
// in the returned Result.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/minisql/pkg/token"
)

// Parser parses a single statement.
type Parser struct {
	input  string
	tokens []token.Token // significant tokens up to the first ';'
	pos    int
	end    int // offset where the first statement ends
	err    *ParseError
}

// NewParser creates a parser for the first statement of sql.
func NewParser(sql string) *Parser {
	p := &Parser{input: sql, end: len(sql)}
	for _, t := range significant(Tokenize(sql)) {
		if t.IsPunct(";") {
			p.end = t.Offset
			break
		}
		p.tokens = append(p.tokens, t)
	}
	return p
}

// Parse parses the first statement in sql.
func Parse(sql string) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf(ErrInternal, r)
			res = &Result{
				Stmt: &UnknownStmt{Message: msg},
				Err:  &ParseError{Message: msg},
			}
		}
	}()
	return NewParser(sql).ParseStatement()
}

// ParseStatement parses the statement and returns the result.
func (p *Parser) ParseStatement() *Result {
	stmt := p.parseStatement()
	if p.err != nil {
		return &Result{Stmt: stmt, Err: p.err}
	}
	return &Result{Stmt: stmt, Valid: true}
}

func (p *Parser) parseStatement() Statement {
	tok, ok := p.current()
	if !ok {
		p.fail(ErrEmptyStatement)
		return &UnknownStmt{Message: ErrEmptyStatement}
	}

	if tok.Kind == token.Keyword {
		switch tok.Text {
		case "CREATE":
			return p.parseCreateTable()
		case "INSERT":
			return p.parseInsert()
		case "SELECT":
			return p.parseSelect()
		case "UPDATE":
			return p.parseUpdate()
		case "DELETE":
			return p.parseDelete()
		case "DROP":
			return p.parseDropTable()
		case "ALTER":
			return p.parseAlterTable()
		}
	}

	msg := fmt.Sprintf(ErrUnsupported, strings.ToUpper(tok.Text))
	p.fail(msg)
	return &UnknownStmt{Message: msg}
}

// ---------- Token Helpers ----------

func (p *Parser) current() (token.Token, bool) {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) (token.Token, bool) {
	if p.pos+n < len(p.tokens) {
		return p.tokens[p.pos+n], true
	}
	return token.Token{}, false
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// checkKeyword reports whether the token n positions ahead is the keyword.
func (p *Parser) checkKeyword(n int, word string) bool {
	tok, ok := p.peekN(n)
	return ok && tok.IsKeyword(word)
}

func (p *Parser) checkPunct(n int, punct string) bool {
	tok, ok := p.peekN(n)
	return ok && tok.IsPunct(punct)
}

// matchKeyword consumes the current token if it is the keyword.
func (p *Parser) matchKeyword(word string) bool {
	if p.checkKeyword(0, word) {
		p.pos++
		return true
	}
	return false
}

func (p *Parser) matchPunct(punct string) bool {
	if p.checkPunct(0, punct) {
		p.pos++
		return true
	}
	return false
}

// expectKeyword consumes the keyword or records "expected WORD after AFTER".
func (p *Parser) expectKeyword(word, after string) bool {
	if p.matchKeyword(word) {
		return true
	}
	p.fail(fmt.Sprintf(ErrExpectedAfter, word, after))
	return false
}

// fail records the first error at the current token.
func (p *Parser) fail(msg string) {
	if p.err != nil {
		return
	}
	offset := p.end
	if tok, ok := p.current(); ok {
		offset = tok.Offset
	}
	p.err = &ParseError{Offset: offset, Message: msg}
}

// raw returns the source text of a token as written.
func (p *Parser) raw(tok token.Token) string {
	return p.input[tok.Offset:tok.End()]
}

// rest returns the trimmed source text after offset up to the end of the
// statement.
func (p *Parser) rest(offset int) string {
	if offset >= p.end {
		return ""
	}
	return strings.TrimSpace(p.input[offset:p.end])
}

// lastEnd returns the end offset of the most recently consumed token.
func (p *Parser) lastEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.tokens[p.pos-1].End()
}

// hasKeywordAhead reports whether any remaining token is the keyword.
func (p *Parser) hasKeywordAhead(word string) bool {
	for _, t := range p.tokens[p.pos:] {
		if t.IsKeyword(word) {
			return true
		}
	}
	return false
}

// ---------- Names ----------

// name consumes an identifier, a keyword not listed in stop, or a quoted
// name. A dotted name (schema.table) is returned joined.
func (p *Parser) name(stop ...string) (string, bool) {
	part, ok := p.namePart(stop)
	if !ok {
		return "", false
	}
	for p.checkPunct(0, ".") {
		if next, ok := p.peekN(1); !ok || !isNameToken(next) {
			break
		}
		p.pos++
		more, _ := p.namePart(nil)
		part += "." + more
	}
	return part, true
}

func (p *Parser) namePart(stop []string) (string, bool) {
	tok, ok := p.current()
	if !ok || !isNameToken(tok) {
		return "", false
	}
	if tok.Kind == token.Keyword {
		for _, s := range stop {
			if tok.Text == s {
				return "", false
			}
		}
	}
	p.pos++
	if tok.Kind == token.String {
		return unquote(tok.Text), true
	}
	return p.raw(tok), true
}

// tableName parses the target table or records "expected table name after X".
func (p *Parser) tableName(after string, stop ...string) (string, bool) {
	name, ok := p.name(stop...)
	if !ok {
		p.fail(fmt.Sprintf(ErrExpectedTableName, after))
	}
	return name, ok
}

func isNameToken(tok token.Token) bool {
	return tok.Kind == token.Identifier || tok.Kind == token.Keyword || tok.Kind == token.String
}

// unquote strips the outer quotes of a string token, if present.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	if len(s) >= 1 && (s[0] == '\'' || s[0] == '"') {
		return s[1:]
	}
	return s
}

// group consumes a parenthesized group starting at the current '(' and
// returns its raw source text including the parentheses.
func (p *Parser) group(what string) (string, bool) {
	start := p.tokens[p.pos].Offset
	depth := 0
	for !p.atEnd() {
		tok := p.advance()
		switch {
		case tok.IsPunct("("):
			depth++
		case tok.IsPunct(")"):
			depth--
			if depth == 0 {
				return p.input[start:tok.End()], true
			}
		}
	}
	p.fail(fmt.Sprintf(ErrUnclosedList, what))
	return "", false
}
