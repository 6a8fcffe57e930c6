package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/minisql/pkg/parser"
)

func init() {
	Register(ReservedTableName)
	Register(ReservedColumnName)
	Register(DuplicateColumn)
	Register(MissingColumnType)
	Register(MultiplePrimaryKeys)
	Register(MissingPrimaryKey)
	Register(InvalidName)
}

var createOnly = []parser.StatementKind{parser.KindCreateTable}

// ReservedTableName rejects tables named after reserved words.
var ReservedTableName = RuleDef{
	ID:          "CT01",
	Name:        "create.reserved_table_name",
	Group:       "create",
	Description: "Table name must not be a reserved word.",
	Severity:    SeverityError,
	Statements:  createOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		ct := stmt.(*parser.CreateTableStmt)
		if ct.Table == "" || !IsReserved(ct.Table) {
			return nil
		}
		return []Diagnostic{errorf("CT01", fmt.Sprintf("Table name '%s' is a reserved word", ct.Table))}
	},
}

// ReservedColumnName warns about columns named after reserved words.
var ReservedColumnName = RuleDef{
	ID:          "CT02",
	Name:        "create.reserved_column_name",
	Group:       "create",
	Description: "Column names should not be reserved words.",
	Severity:    SeverityWarning,
	Statements:  createOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		var diags []Diagnostic
		for _, col := range stmt.(*parser.CreateTableStmt).Columns {
			if !IsReserved(col.Name) {
				continue
			}
			diags = append(diags,
				warnf("CT02", fmt.Sprintf("Column name '%s' is a reserved word", col.Name)),
				hintf("CT02", fmt.Sprintf("Consider renaming column '%s', e.g. '%s_value'",
					col.Name, strings.ToLower(col.Name))),
			)
		}
		return diags
	},
}

// DuplicateColumn rejects columns declared twice (case-insensitive).
var DuplicateColumn = RuleDef{
	ID:          "CT03",
	Name:        "create.duplicate_column",
	Group:       "create",
	Description: "Column names must be unique within a table.",
	Severity:    SeverityError,
	Statements:  createOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		var diags []Diagnostic
		seen := make(map[string]bool)
		reported := make(map[string]bool)
		for _, col := range stmt.(*parser.CreateTableStmt).Columns {
			key := strings.ToLower(col.Name)
			if seen[key] && !reported[key] {
				reported[key] = true
				diags = append(diags, errorf("CT03", fmt.Sprintf("Duplicate column name '%s'", col.Name)))
			}
			seen[key] = true
		}
		return diags
	},
}

// MissingColumnType rejects columns declared without a data type.
var MissingColumnType = RuleDef{
	ID:          "CT04",
	Name:        "create.missing_type",
	Group:       "create",
	Description: "Every column must declare a data type.",
	Severity:    SeverityError,
	Statements:  createOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		var diags []Diagnostic
		for _, col := range stmt.(*parser.CreateTableStmt).Columns {
			if !col.TypeDeclared {
				diags = append(diags, errorf("CT04", fmt.Sprintf("Column '%s' must have a data type", col.Name)))
			}
		}
		return diags
	},
}

// MultiplePrimaryKeys rejects tables declaring more than one primary key.
var MultiplePrimaryKeys = RuleDef{
	ID:          "CT05",
	Name:        "create.multiple_primary_keys",
	Group:       "create",
	Description: "A table can have at most one PRIMARY KEY.",
	Severity:    SeverityError,
	Statements:  createOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		ct := stmt.(*parser.CreateTableStmt)
		if primaryKeyCount(ct) <= 1 {
			return nil
		}
		return []Diagnostic{errorf("CT05",
			fmt.Sprintf("Table '%s' has multiple PRIMARY KEY constraints", ct.Table))}
	},
}

// MissingPrimaryKey suggests adding a primary key.
var MissingPrimaryKey = RuleDef{
	ID:          "CT06",
	Name:        "create.missing_primary_key",
	Group:       "create",
	Description: "Tables should have a PRIMARY KEY.",
	Severity:    SeverityHint,
	Statements:  createOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		ct := stmt.(*parser.CreateTableStmt)
		if primaryKeyCount(ct) > 0 {
			return nil
		}
		return []Diagnostic{hintf("CT06",
			fmt.Sprintf("Consider adding a PRIMARY KEY to table '%s'", ct.Table))}
	},
}

// InvalidName warns about table and column names that are not plain
// identifiers.
var InvalidName = RuleDef{
	ID:          "CT07",
	Name:        "create.invalid_name",
	Group:       "create",
	Description: "Names should match [A-Za-z_][A-Za-z0-9_]*.",
	Severity:    SeverityWarning,
	Statements:  createOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		ct := stmt.(*parser.CreateTableStmt)
		var diags []Diagnostic
		if ct.Table != "" && !IsValidName(ct.Table) {
			diags = append(diags, warnf("CT07",
				fmt.Sprintf("Table name '%s' contains invalid characters", ct.Table)))
		}
		for _, col := range ct.Columns {
			if !IsValidName(col.Name) {
				diags = append(diags, warnf("CT07",
					fmt.Sprintf("Column name '%s' contains invalid characters", col.Name)))
			}
		}
		return diags
	},
}

// primaryKeyCount counts column-level and table-level PRIMARY KEY constraints.
func primaryKeyCount(ct *parser.CreateTableStmt) int {
	n := 0
	for _, col := range ct.Columns {
		if col.HasConstraint("PRIMARY KEY") {
			n++
		}
	}
	for _, con := range ct.Constraints {
		if strings.Contains(strings.ToUpper(con), "PRIMARY KEY") {
			n++
		}
	}
	return n
}
