package engine

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/minisql/pkg/parser"
)

// Plan is a rough execution estimate for a statement.
type Plan struct {
	Operation     string   `json:"operation"`
	Table         string   `json:"table,omitempty"`
	EstimatedRows int      `json:"estimatedRows"`
	Cost          int      `json:"cost"`
	Details       []string `json:"details"`
}

// Plan estimates the work a statement would do against the current store
// without executing it.
func (e *Engine) Plan(sql string) *Plan {
	parsed := parser.Parse(sql)
	if !parsed.Valid {
		return &Plan{
			Operation: "UNKNOWN",
			Details:   []string{"Parse error: " + parsed.Error()},
		}
	}

	stmt := parsed.Stmt
	table := stmt.TableName()
	plan := &Plan{
		Operation: strings.ReplaceAll(stmt.Kind().String(), "_", " "),
		Table:     table,
		Details:   []string{},
	}

	rows, err := e.store.Rows(table)
	exists := err == nil
	if !exists && stmt.Kind() != parser.KindCreateTable {
		plan.Details = append(plan.Details, fmt.Sprintf("Table '%s' does not exist", table))
	}

	switch s := stmt.(type) {
	case *parser.SelectStmt:
		plan.EstimatedRows = len(rows)
		plan.Cost = 1
		plan.Details = append(plan.Details, fmt.Sprintf("Full table scan on '%s'", table))
	case *parser.InsertStmt:
		plan.EstimatedRows = 1
		plan.Cost = 1
		plan.Details = append(plan.Details, fmt.Sprintf("Append %d value(s) to '%s'", len(s.Values), table))
	case *parser.UpdateStmt:
		plan.EstimatedRows = len(rows)
		plan.Cost = max(len(rows), 1)
		plan.Details = append(plan.Details, fmt.Sprintf("Scan all rows of '%s'", table))
	case *parser.DeleteStmt:
		plan.EstimatedRows = len(rows)
		plan.Cost = max(len(rows), 1)
		if s.HasWhere {
			plan.Details = append(plan.Details, fmt.Sprintf("Scan all rows of '%s'", table))
		} else {
			plan.Details = append(plan.Details, fmt.Sprintf("Remove all rows of '%s'", table))
		}
	case *parser.CreateTableStmt:
		plan.Cost = 10
		if exists {
			plan.Details = append(plan.Details, fmt.Sprintf("Table '%s' already exists", table))
		}
		plan.Details = append(plan.Details, fmt.Sprintf("Create table '%s' with %d column(s)", table, len(s.Columns)))
	case *parser.DropTableStmt:
		plan.EstimatedRows = len(rows)
		plan.Cost = 5
		plan.Details = append(plan.Details, fmt.Sprintf("Drop table '%s' and its data", table))
	case *parser.AlterTableStmt:
		plan.EstimatedRows = len(rows)
		plan.Cost = 5
		plan.Details = append(plan.Details, fmt.Sprintf("Alter structure of '%s'", table))
	}
	return plan
}
