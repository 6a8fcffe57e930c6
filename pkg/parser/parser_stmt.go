package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/minisql/pkg/token"
)

// ---------- CREATE TABLE ----------

// parseCreateTable parses:
//
//	CREATE TABLE [IF NOT EXISTS] name ( element (, element)* )
func (p *Parser) parseCreateTable() Statement {
	p.advance() // CREATE
	stmt := &CreateTableStmt{}
	if !p.expectKeyword("TABLE", "CREATE") {
		return stmt
	}

	if p.checkKeyword(0, "IF") && p.checkKeyword(1, "NOT") && p.checkKeyword(2, "EXISTS") {
		p.pos += 3
		stmt.IfNotExists = true
	}

	name, ok := p.tableName("CREATE TABLE")
	if !ok {
		return stmt
	}
	stmt.Table = name

	if !p.matchPunct("(") {
		p.fail(fmt.Sprintf(ErrExpectedAfter, "'('", "table name"))
		return stmt
	}
	if p.checkPunct(0, ")") {
		p.fail("expected column definition")
		return stmt
	}

	for {
		if !p.parseTableElement(stmt) {
			return stmt
		}
		if p.matchPunct(",") {
			continue
		}
		if p.matchPunct(")") {
			return stmt
		}
		p.fail(fmt.Sprintf(ErrUnclosedList, "column list"))
		return stmt
	}
}

// atElementEnd reports whether the current token ends a column definition.
func (p *Parser) atElementEnd() bool {
	return p.atEnd() || p.checkPunct(0, ",") || p.checkPunct(0, ")")
}

// isTableConstraint reports whether the current element is a table-level
// constraint rather than a column.
func (p *Parser) isTableConstraint() bool {
	switch {
	case p.checkKeyword(0, "CONSTRAINT"), p.checkKeyword(0, "CHECK"):
		return true
	case p.checkKeyword(0, "PRIMARY"), p.checkKeyword(0, "FOREIGN"):
		return p.checkKeyword(1, "KEY")
	case p.checkKeyword(0, "UNIQUE"):
		return p.checkPunct(1, "(")
	}
	return false
}

func (p *Parser) parseTableElement(stmt *CreateTableStmt) bool {
	if p.isTableConstraint() {
		start := p.tokens[p.pos].Offset
		for !p.atElementEnd() {
			if p.checkPunct(0, "(") {
				if _, ok := p.group("constraint"); !ok {
					return false
				}
				continue
			}
			p.advance()
		}
		stmt.Constraints = append(stmt.Constraints, collapseSpace(p.input[start:p.lastEnd()]))
		return true
	}

	name, ok := p.name()
	if !ok {
		p.fail(ErrExpectedColumnName)
		return false
	}
	col := ColumnDef{Name: name, Type: "TEXT", Constraints: []string{}}

	if tok, ok := p.current(); ok && isTypeToken(tok) {
		p.advance()
		col.Type = strings.ToUpper(tok.Text)
		col.TypeDeclared = true
		if p.checkPunct(0, "(") {
			size, ok := p.group("type size")
			if !ok {
				return false
			}
			col.Type += collapseSpace(size)
		}
	}

	for !p.atElementEnd() {
		con, ok := p.constraint()
		if !ok {
			return false
		}
		col.Constraints = append(col.Constraints, con)
	}

	stmt.Columns = append(stmt.Columns, col)
	return true
}

// isTypeToken reports whether tok can be a column type: a known data type
// keyword or any plain identifier.
func isTypeToken(tok token.Token) bool {
	if tok.Kind == token.Identifier {
		return true
	}
	return tok.Kind == token.Keyword && token.IsDataType(tok.Text)
}

// constraint parses one column constraint. Two-word constraints are merged:
// PRIMARY KEY, FOREIGN KEY, NOT NULL.
func (p *Parser) constraint() (string, bool) {
	tok := p.advance()

	if tok.Kind == token.Keyword {
		switch tok.Text {
		case "PRIMARY", "FOREIGN":
			if p.matchKeyword("KEY") {
				return tok.Text + " KEY", true
			}
		case "NOT":
			if p.matchKeyword("NULL") {
				return "NOT NULL", true
			}
		case "DEFAULT":
			if value, ok := p.operand(); ok {
				return "DEFAULT " + value, true
			}
		case "CHECK":
			if p.checkPunct(0, "(") {
				expr, ok := p.group("CHECK")
				return "CHECK " + expr, ok
			}
		case "REFERENCES":
			ref, ok := p.name()
			if !ok {
				p.fail(fmt.Sprintf(ErrExpectedTableName, "REFERENCES"))
				return "", false
			}
			if p.checkPunct(0, "(") {
				cols, ok := p.group("REFERENCES")
				if !ok {
					return "", false
				}
				ref += collapseSpace(cols)
			}
			return "REFERENCES " + ref, true
		}
		return tok.Text, true
	}

	if tok.IsPunct("(") {
		p.pos--
		return p.group("column definition")
	}
	return p.raw(tok), true
}

// operand consumes a single value: a literal (with optional sign), a name,
// or a parenthesized expression.
func (p *Parser) operand() (string, bool) {
	if p.atElementEnd() {
		return "", false
	}
	if p.checkPunct(0, "(") {
		return p.group("expression")
	}
	return p.literal()
}

// ---------- INSERT ----------

// parseInsert parses:
//
//	INSERT INTO name [( column (, column)* )] VALUES ( literal (, literal)* )
const errExpectedValue = "expected value in VALUES list"

func (p *Parser) parseInsert() Statement {
	p.advance() // INSERT
	stmt := &InsertStmt{Values: []string{}}
	if !p.expectKeyword("INTO", "INSERT") {
		return stmt
	}

	name, ok := p.tableName("INTO", "VALUES")
	if !ok {
		return stmt
	}
	stmt.Table = name

	if p.matchPunct("(") {
		stmt.Columns = []string{}
		for !p.matchPunct(")") {
			col, ok := p.name()
			if !ok {
				if p.atEnd() {
					p.fail(fmt.Sprintf(ErrUnclosedList, "column list"))
				} else {
					p.fail(ErrExpectedColumnName)
				}
				return stmt
			}
			stmt.Columns = append(stmt.Columns, col)
			if p.matchPunct(",") {
				if p.checkPunct(0, ")") {
					p.fail(ErrExpectedColumnName)
					return stmt
				}
				continue
			}
			if !p.checkPunct(0, ")") {
				p.fail(fmt.Sprintf(ErrUnclosedList, "column list"))
				return stmt
			}
		}
	}

	after := "table name"
	if stmt.Columns != nil {
		after = "column list"
	}
	if !p.expectKeyword("VALUES", after) {
		return stmt
	}
	if !p.matchPunct("(") {
		p.fail(fmt.Sprintf(ErrExpectedAfter, "'('", "VALUES"))
		return stmt
	}

	for !p.matchPunct(")") {
		value, ok := p.literal()
		if !ok {
			if p.atEnd() {
				p.fail(fmt.Sprintf(ErrUnclosedList, "VALUES list"))
			} else {
				p.fail(errExpectedValue)
			}
			return stmt
		}
		stmt.Values = append(stmt.Values, value)
		if p.matchPunct(",") {
			if p.checkPunct(0, ")") {
				p.fail(errExpectedValue)
				return stmt
			}
			continue
		}
		if !p.checkPunct(0, ")") {
			p.fail(fmt.Sprintf(ErrUnclosedList, "VALUES list"))
			return stmt
		}
	}
	return stmt
}

// literal consumes one literal and returns its raw text. A sign operator
// directly followed by a number is joined with it.
func (p *Parser) literal() (string, bool) {
	tok, ok := p.current()
	if !ok {
		return "", false
	}
	switch tok.Kind {
	case token.Operator:
		if tok.Text == "-" || tok.Text == "+" {
			if next, ok := p.peekN(1); ok && next.Kind == token.Number {
				p.pos += 2
				return tok.Text + next.Text, true
			}
		}
		return "", false
	case token.Keyword:
		p.advance()
		return tok.Text, true
	case token.Number, token.String, token.Identifier:
		p.advance()
		return tok.Text, true
	}
	return "", false
}

// ---------- SELECT ----------

// parseSelect locates the first FROM and takes the name right after it.
func (p *Parser) parseSelect() Statement {
	selectTok := p.advance()
	stmt := &SelectStmt{}

	fromIdx := -1
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i].IsKeyword("FROM") {
			fromIdx = i
			break
		}
	}
	if fromIdx < 0 {
		stmt.Projection = p.rest(selectTok.End())
		p.pos = len(p.tokens)
		p.fail(fmt.Sprintf(ErrExpectedAfter, "FROM", "SELECT list"))
		return stmt
	}
	stmt.Projection = strings.TrimSpace(p.input[selectTok.End():p.tokens[fromIdx].Offset])
	p.pos = fromIdx + 1

	name, ok := p.tableName("FROM", "WHERE", "GROUP", "ORDER", "LIMIT", "JOIN", "UNION")
	if !ok {
		return stmt
	}
	stmt.Table = name
	stmt.Tail = p.rest(p.lastEnd())
	return stmt
}

// ---------- UPDATE / DELETE ----------

func (p *Parser) parseUpdate() Statement {
	p.advance() // UPDATE
	stmt := &UpdateStmt{}
	name, ok := p.tableName("UPDATE", "SET", "WHERE")
	if !ok {
		return stmt
	}
	stmt.Table = name
	stmt.Tail = p.rest(p.lastEnd())
	stmt.HasWhere = p.hasKeywordAhead("WHERE")
	return stmt
}

func (p *Parser) parseDelete() Statement {
	p.advance() // DELETE
	stmt := &DeleteStmt{}
	if !p.expectKeyword("FROM", "DELETE") {
		return stmt
	}
	name, ok := p.tableName("DELETE FROM", "WHERE")
	if !ok {
		return stmt
	}
	stmt.Table = name
	stmt.Tail = p.rest(p.lastEnd())
	stmt.HasWhere = p.hasKeywordAhead("WHERE")
	return stmt
}

// ---------- DROP / ALTER ----------

func (p *Parser) parseDropTable() Statement {
	p.advance() // DROP
	stmt := &DropTableStmt{}
	if !p.expectKeyword("TABLE", "DROP") {
		return stmt
	}
	if p.checkKeyword(0, "IF") && p.checkKeyword(1, "EXISTS") {
		p.pos += 2
		stmt.IfExists = true
	}
	name, ok := p.tableName("DROP TABLE")
	if !ok {
		return stmt
	}
	stmt.Table = name
	stmt.Tail = p.rest(p.lastEnd())
	return stmt
}

func (p *Parser) parseAlterTable() Statement {
	p.advance() // ALTER
	stmt := &AlterTableStmt{}
	if !p.expectKeyword("TABLE", "ALTER") {
		return stmt
	}
	name, ok := p.tableName("ALTER TABLE", "ADD", "DROP", "RENAME", "ALTER")
	if !ok {
		return stmt
	}
	stmt.Table = name
	stmt.Tail = p.rest(p.lastEnd())
	return stmt
}

// collapseSpace folds whitespace runs into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
