package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/minisql/pkg/core"
	"github.com/leapstack-labs/minisql/pkg/lint"
	"github.com/leapstack-labs/minisql/pkg/parser"
)

// Execute validates, parses and runs one statement. It never panics and
// never returns nil; failures are reported in the Result.
func (e *Engine) Execute(sql string) (res *Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("statement panicked", "sql", sql, "panic", r)
			res = failure(fmt.Errorf("%w: %v", ErrInternal, r))
		}
		res.ExecutionTime = time.Since(start)
		e.logger.Debug("executed statement",
			"sql", sql,
			"success", res.Success,
			"duration", res.ExecutionTime,
		)
		e.runHook(sql, res)
	}()

	validation := lint.Validate(sql)
	if !validation.Valid {
		res = failure(fmt.Errorf("%w: %s", ErrValidation, strings.Join(validation.Errors, "; ")))
		res.Validation = validation
		return res
	}

	parsed := parser.Parse(sql)
	if !parsed.Valid {
		res = failure(fmt.Errorf("%w: %s", ErrValidation, parsed.Error()))
		res.Validation = validation
		return res
	}

	res = e.dispatch(parsed.Stmt)
	res.Validation = validation
	return res
}

// runHook calls the OnExecute hook. A panicking hook is logged and does not
// affect the result.
func (e *Engine) runHook(sql string, res *Result) {
	if e.onExecute == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("execute hook panicked", "sql", sql, "panic", r)
		}
	}()
	e.onExecute(sql, res)
}

func (e *Engine) dispatch(stmt parser.Statement) *Result {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return e.createTable(s)
	case *parser.InsertStmt:
		return e.insert(s)
	case *parser.SelectStmt:
		return e.selectRows(s)
	case *parser.UpdateStmt:
		return e.update(s)
	case *parser.DeleteStmt:
		return e.deleteRows(s)
	case *parser.DropTableStmt:
		return e.dropTable(s)
	case *parser.AlterTableStmt:
		return e.alterTable(s)
	}
	return failure(fmt.Errorf("%w: unsupported statement kind %s", ErrInternal, stmt.Kind()))
}

func notFound(name string) *Result {
	res := failure(fmt.Errorf("%w: %s", ErrTableNotFound, name))
	res.Error = fmt.Sprintf("Table '%s' does not exist", name)
	return res
}

func (e *Engine) createTable(s *parser.CreateTableStmt) *Result {
	if e.store.Has(s.Table) {
		if s.IfNotExists {
			return success(fmt.Sprintf("Table '%s' already exists, skipped", s.Table))
		}
		res := failure(fmt.Errorf("%w: %s", ErrTableExists, s.Table))
		res.Error = fmt.Sprintf("Table '%s' already exists", s.Table)
		return res
	}

	schema := core.TableSchema{Name: s.Table, Columns: make([]core.Column, len(s.Columns))}
	for i, col := range s.Columns {
		constraints := make([]string, len(col.Constraints))
		copy(constraints, col.Constraints)
		schema.Columns[i] = core.Column{Name: col.Name, Type: col.Type, Constraints: constraints}
	}
	if err := e.store.Create(schema); err != nil {
		return failure(err)
	}
	e.logger.Info("table created", "table", s.Table, "columns", len(schema.Columns))
	return success(fmt.Sprintf("Table '%s' created successfully", s.Table))
}

func (e *Engine) insert(s *parser.InsertStmt) *Result {
	schema, err := e.store.Schema(s.Table)
	if err != nil {
		return notFound(s.Table)
	}

	row := make(core.Row, len(s.Values))
	if s.Columns != nil {
		for i, name := range s.Columns {
			if i >= len(s.Values) {
				break
			}
			if col, ok := schema.Column(name); ok {
				name = col.Name
			}
			row[name] = decodeLiteral(s.Values[i])
		}
	} else {
		for i, col := range schema.Columns {
			if i >= len(s.Values) {
				break
			}
			row[col.Name] = decodeLiteral(s.Values[i])
		}
	}

	if err := e.store.Append(s.Table, row); err != nil {
		return failure(err)
	}
	res := success(fmt.Sprintf("1 row inserted into '%s'", s.Table))
	res.RowsAffected = affected(1)
	return res
}

func (e *Engine) selectRows(s *parser.SelectStmt) *Result {
	schema, err := e.store.Schema(s.Table)
	if err != nil {
		return notFound(s.Table)
	}
	rows, _ := e.store.Rows(s.Table)

	res := success(fmt.Sprintf("%d row(s) returned", len(rows)))
	res.Columns = schema.ColumnNames()
	res.Rows = make([][]any, len(rows))
	for i, row := range rows {
		out := make([]any, len(schema.Columns))
		for j, col := range schema.Columns {
			out[j] = row[col.Name]
		}
		res.Rows[i] = out
	}
	res.RowCount = len(rows)
	return res
}

func (e *Engine) update(s *parser.UpdateStmt) *Result {
	if !e.store.Has(s.Table) {
		return notFound(s.Table)
	}
	res := success(fmt.Sprintf("UPDATE on '%s' is not evaluated; 0 rows updated", s.Table))
	res.RowsAffected = affected(0)
	return res
}

func (e *Engine) deleteRows(s *parser.DeleteStmt) *Result {
	if !e.store.Has(s.Table) {
		return notFound(s.Table)
	}
	if s.HasWhere {
		res := success(fmt.Sprintf("DELETE with WHERE on '%s' is not evaluated; 0 rows deleted", s.Table))
		res.RowsAffected = affected(0)
		return res
	}

	n, err := e.store.Truncate(s.Table)
	if err != nil {
		return failure(err)
	}
	e.logger.Info("table truncated", "table", s.Table, "rows", n)
	res := success(fmt.Sprintf("%d row(s) deleted from '%s'", n, s.Table))
	res.RowsAffected = affected(n)
	return res
}

func (e *Engine) dropTable(s *parser.DropTableStmt) *Result {
	if !e.store.Has(s.Table) {
		if s.IfExists {
			return success(fmt.Sprintf("Table '%s' does not exist, skipped", s.Table))
		}
		return notFound(s.Table)
	}
	if err := e.store.Drop(s.Table); err != nil {
		return failure(err)
	}
	e.logger.Info("table dropped", "table", s.Table)
	return success(fmt.Sprintf("Table '%s' dropped successfully", s.Table))
}

func (e *Engine) alterTable(s *parser.AlterTableStmt) *Result {
	if !e.store.Has(s.Table) {
		return notFound(s.Table)
	}
	return success(fmt.Sprintf("Table '%s' altered successfully", s.Table))
}
