package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/minisql/pkg/parser"
)

func init() {
	Register(InsertMissingTable)
	Register(InsertEmptyValues)
	Register(InsertColumnCount)
	Register(InsertImplicitColumns)
	Register(SelectMissingTable)
	Register(SelectStar)
	Register(ModifyMissingTable)
	Register(UpdateWithoutWhere)
	Register(DeleteWithoutWhere)
}

// missingTable builds a check reporting statements without a target table.
// The parser rejects those already, so these only fire for statements
// built by hand.
func missingTable(id, verb string) CheckFunc {
	return func(stmt parser.Statement) []Diagnostic {
		if stmt.TableName() != "" {
			return nil
		}
		return []Diagnostic{errorf(id, fmt.Sprintf("%s statement must specify a table name", verb))}
	}
}

// ---------- INSERT ----------

var insertOnly = []parser.StatementKind{parser.KindInsert}

// InsertMissingTable rejects INSERT without a target table.
var InsertMissingTable = RuleDef{
	ID:          "IN01",
	Name:        "insert.missing_table",
	Group:       "insert",
	Description: "INSERT must name a table.",
	Severity:    SeverityError,
	Statements:  insertOnly,
	Check:       missingTable("IN01", "INSERT"),
}

// InsertEmptyValues rejects INSERT with an empty VALUES list.
var InsertEmptyValues = RuleDef{
	ID:          "IN02",
	Name:        "insert.empty_values",
	Group:       "insert",
	Description: "INSERT must supply at least one value.",
	Severity:    SeverityError,
	Statements:  insertOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		if len(stmt.(*parser.InsertStmt).Values) > 0 {
			return nil
		}
		return []Diagnostic{errorf("IN02", "INSERT statement must have at least one value")}
	},
}

// InsertColumnCount rejects an explicit column list whose length differs
// from the number of values.
var InsertColumnCount = RuleDef{
	ID:          "IN03",
	Name:        "insert.column_count",
	Group:       "insert",
	Description: "Column count must match value count.",
	Severity:    SeverityError,
	Statements:  insertOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		ins := stmt.(*parser.InsertStmt)
		if ins.Columns == nil || len(ins.Values) == 0 || len(ins.Columns) == len(ins.Values) {
			return nil
		}
		return []Diagnostic{errorf("IN03", fmt.Sprintf(
			"Column count (%d) does not match value count (%d)", len(ins.Columns), len(ins.Values)))}
	},
}

// InsertImplicitColumns warns about INSERT relying on table column order.
var InsertImplicitColumns = RuleDef{
	ID:          "IN04",
	Name:        "insert.implicit_columns",
	Group:       "insert",
	Description: "INSERT should list its target columns.",
	Severity:    SeverityWarning,
	Statements:  insertOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		ins := stmt.(*parser.InsertStmt)
		if ins.Columns != nil {
			return nil
		}
		return []Diagnostic{
			warnf("IN04", "INSERT without a column list depends on the table's column order"),
			hintf("IN04", fmt.Sprintf(
				"Specify column names explicitly: INSERT INTO %s (col1, col2, ...) VALUES (...)", ins.Table)),
		}
	},
}

// ---------- SELECT ----------

// SelectMissingTable rejects SELECT without a FROM table.
var SelectMissingTable = RuleDef{
	ID:          "SE01",
	Name:        "select.missing_table",
	Group:       "select",
	Description: "SELECT must read from a table.",
	Severity:    SeverityError,
	Statements:  []parser.StatementKind{parser.KindSelect},
	Check:       missingTable("SE01", "SELECT"),
}

// SelectStar suggests naming columns instead of selecting *.
var SelectStar = RuleDef{
	ID:          "SE02",
	Name:        "select.star",
	Group:       "select",
	Description: "Prefer explicit column lists over *.",
	Severity:    SeverityHint,
	Statements:  []parser.StatementKind{parser.KindSelect},
	Check: func(stmt parser.Statement) []Diagnostic {
		sel := stmt.(*parser.SelectStmt)
		if !strings.Contains(sel.Projection, "*") && !strings.Contains(sel.Tail, "*") {
			return nil
		}
		return []Diagnostic{hintf("SE02",
			"Consider selecting specific columns instead of * for better performance")}
	},
}

// ---------- UPDATE / DELETE ----------

// ModifyMissingTable rejects UPDATE and DELETE without a target table.
var ModifyMissingTable = RuleDef{
	ID:          "UD01",
	Name:        "modify.missing_table",
	Group:       "modify",
	Description: "UPDATE and DELETE must name a table.",
	Severity:    SeverityError,
	Statements:  []parser.StatementKind{parser.KindUpdate, parser.KindDelete},
	Check: func(stmt parser.Statement) []Diagnostic {
		verb := "UPDATE"
		if stmt.Kind() == parser.KindDelete {
			verb = "DELETE"
		}
		return missingTable("UD01", verb)(stmt)
	},
}

// UpdateWithoutWhere warns about UPDATE touching every row.
var UpdateWithoutWhere = RuleDef{
	ID:          "UD02",
	Name:        "modify.update_without_where",
	Group:       "modify",
	Description: "UPDATE without WHERE affects all rows.",
	Severity:    SeverityWarning,
	Statements:  []parser.StatementKind{parser.KindUpdate},
	Check: func(stmt parser.Statement) []Diagnostic {
		if stmt.(*parser.UpdateStmt).HasWhere {
			return nil
		}
		return []Diagnostic{
			warnf("UD02", "UPDATE without WHERE clause will affect all rows"),
			hintf("UD02", "Add a WHERE clause to limit which rows are updated"),
		}
	},
}

// DeleteWithoutWhere warns about DELETE removing every row.
var DeleteWithoutWhere = RuleDef{
	ID:          "UD03",
	Name:        "modify.delete_without_where",
	Group:       "modify",
	Description: "DELETE without WHERE removes all rows.",
	Severity:    SeverityWarning,
	Statements:  []parser.StatementKind{parser.KindDelete},
	Check: func(stmt parser.Statement) []Diagnostic {
		del := stmt.(*parser.DeleteStmt)
		if del.HasWhere {
			return nil
		}
		return []Diagnostic{
			warnf("UD03", "DELETE without WHERE clause will remove all rows"),
			hintf("UD03", "Add a WHERE clause to limit which rows are deleted"),
			hintf("UD03", fmt.Sprintf("Use TRUNCATE TABLE %s to empty the table deliberately", del.Table)),
		}
	},
}
