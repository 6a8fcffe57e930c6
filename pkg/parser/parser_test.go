package parser_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/minisql/pkg/parser"
)

func mustParse(t *testing.T, sql string) parser.Statement {
	t.Helper()
	res := parser.Parse(sql)
	require.True(t, res.Valid, "parse %q: %s", sql, res.Error())
	require.NotNil(t, res.Stmt)
	return res.Stmt
}

// ---------- CREATE TABLE ----------

func TestParseCreateTable(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE t (a INT PRIMARY KEY, b VARCHAR(50));")
	create, ok := stmt.(*parser.CreateTableStmt)
	require.True(t, ok)

	assert.Equal(t, parser.KindCreateTable, create.Kind())
	assert.Equal(t, "t", create.TableName())
	require.Len(t, create.Columns, 2)
	assert.Equal(t, "a", create.Columns[0].Name)
	assert.Equal(t, "INT", create.Columns[0].Type)
	assert.Equal(t, []string{"PRIMARY KEY"}, create.Columns[0].Constraints)
	assert.True(t, create.Columns[0].HasConstraint("PRIMARY KEY"))
	assert.Equal(t, "VARCHAR(50)", create.Columns[1].Type)
	assert.Empty(t, create.Columns[1].Constraints)
}

func TestParseCreateTable_Constraints(t *testing.T) {
	stmt := mustParse(t, "create table if not exists users (id int not null, name text default 'x', PRIMARY KEY (id))")
	create := stmt.(*parser.CreateTableStmt)

	assert.True(t, create.IfNotExists)
	require.Len(t, create.Columns, 2)
	assert.Equal(t, []string{"NOT NULL"}, create.Columns[0].Constraints)
	assert.Equal(t, []string{"DEFAULT 'x'"}, create.Columns[1].Constraints)
	assert.Equal(t, []string{"PRIMARY KEY (id)"}, create.Constraints)
}

func TestParseCreateTable_UntypedColumn(t *testing.T) {
	create := mustParse(t, "CREATE TABLE t (a, b INT)").(*parser.CreateTableStmt)

	require.Len(t, create.Columns, 2)
	assert.Equal(t, "TEXT", create.Columns[0].Type)
	assert.False(t, create.Columns[0].TypeDeclared)
	assert.True(t, create.Columns[1].TypeDeclared)
}

func TestParseCreateTable_References(t *testing.T) {
	create := mustParse(t, "CREATE TABLE o (uid INT REFERENCES users(id))").(*parser.CreateTableStmt)
	assert.Equal(t, []string{"REFERENCES users(id)"}, create.Columns[0].Constraints)
}

// ---------- INSERT ----------

func TestParseInsert(t *testing.T) {
	ins := mustParse(t, "INSERT INTO users (id, name) VALUES (1, 'Alice')").(*parser.InsertStmt)

	assert.Equal(t, "users", ins.Table)
	assert.Equal(t, []string{"id", "name"}, ins.Columns)
	assert.Equal(t, []string{"1", "'Alice'"}, ins.Values)
}

func TestParseInsert_ImplicitColumns(t *testing.T) {
	ins := mustParse(t, "insert into users values (-5, null, true)").(*parser.InsertStmt)

	assert.Nil(t, ins.Columns)
	assert.Equal(t, []string{"-5", "NULL", "TRUE"}, ins.Values)
}

// ---------- SELECT / UPDATE / DELETE / DROP / ALTER ----------

func TestParseSelect(t *testing.T) {
	sel := mustParse(t, "SELECT id, name FROM users WHERE id = 1").(*parser.SelectStmt)

	assert.Equal(t, "users", sel.Table)
	assert.Equal(t, "id, name", sel.Projection)
	assert.Equal(t, "WHERE id = 1", sel.Tail)
}

func TestParseSelect_Names(t *testing.T) {
	assert.Equal(t, "main.users", mustParse(t, "SELECT * FROM main.users").TableName())
	assert.Equal(t, "my table", mustParse(t, `SELECT * FROM "my table"`).TableName())
}

func TestParseUpdate(t *testing.T) {
	upd := mustParse(t, "UPDATE accounts SET balance = 0").(*parser.UpdateStmt)
	assert.Equal(t, "accounts", upd.Table)
	assert.Equal(t, "SET balance = 0", upd.Tail)
	assert.False(t, upd.HasWhere)

	upd = mustParse(t, "UPDATE accounts SET balance = 0 WHERE id = 1").(*parser.UpdateStmt)
	assert.True(t, upd.HasWhere)
}

func TestParseDelete(t *testing.T) {
	del := mustParse(t, "DELETE FROM t").(*parser.DeleteStmt)
	assert.Equal(t, "t", del.Table)
	assert.False(t, del.HasWhere)

	del = mustParse(t, "DELETE FROM t WHERE id = 1").(*parser.DeleteStmt)
	assert.True(t, del.HasWhere)
	assert.Equal(t, "WHERE id = 1", del.Tail)
}

func TestParseDropTable(t *testing.T) {
	drop := mustParse(t, "DROP TABLE IF EXISTS t").(*parser.DropTableStmt)
	assert.Equal(t, "t", drop.Table)
	assert.True(t, drop.IfExists)
}

func TestParseAlterTable(t *testing.T) {
	alter := mustParse(t, "ALTER TABLE t ADD COLUMN x INT").(*parser.AlterTableStmt)
	assert.Equal(t, "t", alter.Table)
	assert.Equal(t, "ADD COLUMN x INT", alter.Tail)
}

func TestParse_FirstStatementOnly(t *testing.T) {
	sel := mustParse(t, "SELECT * FROM a; DROP TABLE b").(*parser.SelectStmt)
	assert.Equal(t, "a", sel.Table)
	assert.Empty(t, sel.Tail)
}

// ---------- Errors ----------

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		sql  string
		kind parser.StatementKind
		want string
	}{
		{"", parser.KindUnknown, "empty statement"},
		{"-- only a comment", parser.KindUnknown, "empty statement"},
		{"TRUNCATE TABLE t", parser.KindUnknown, "unsupported statement type: TRUNCATE"},
		{"foo bar", parser.KindUnknown, "unsupported statement type: FOO"},
		{"CREATE t", parser.KindCreateTable, "expected TABLE after CREATE"},
		{"CREATE TABLE", parser.KindCreateTable, "expected table name after CREATE TABLE"},
		{"CREATE TABLE t id INT", parser.KindCreateTable, "expected '(' after table name"},
		{"CREATE TABLE t ()", parser.KindCreateTable, "expected column definition"},
		{"CREATE TABLE t (id INT", parser.KindCreateTable, "expected ')' to close column list"},
		{"INSERT users VALUES (1)", parser.KindInsert, "expected INTO after INSERT"},
		{"INSERT INTO VALUES (1)", parser.KindInsert, "expected table name after INTO"},
		{"INSERT INTO t (a, b", parser.KindInsert, "expected ')' to close column list"},
		{"INSERT INTO t", parser.KindInsert, "expected VALUES after table name"},
		{"INSERT INTO t (a) (1)", parser.KindInsert, "expected VALUES after column list"},
		{"INSERT INTO t VALUES 1", parser.KindInsert, "expected '(' after VALUES"},
		{"INSERT INTO t VALUES (1,", parser.KindInsert, "expected ')' to close VALUES list"},
		{"INSERT INTO t (a,) VALUES (1)", parser.KindInsert, "expected column name"},
		{"INSERT INTO t (a) VALUES (1,)", parser.KindInsert, "expected value in VALUES list"},
		{"INSERT INTO t VALUES (1, 2,)", parser.KindInsert, "expected value in VALUES list"},
		{"SELECT 1", parser.KindSelect, "expected FROM after SELECT list"},
		{"SELECT * FROM", parser.KindSelect, "expected table name after FROM"},
		{"UPDATE", parser.KindUpdate, "expected table name after UPDATE"},
		{"DELETE t", parser.KindDelete, "expected FROM after DELETE"},
		{"DROP t", parser.KindDropTable, "expected TABLE after DROP"},
		{"ALTER TABLE", parser.KindAlterTable, "expected table name after ALTER TABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			res := parser.Parse(tt.sql)
			assert.False(t, res.Valid)
			require.NotNil(t, res.Err)
			require.NotNil(t, res.Stmt)
			assert.Equal(t, tt.kind, res.Kind())
			assert.Equal(t, tt.want, res.Error())
		})
	}
}

func TestParse_ErrorOffset(t *testing.T) {
	res := parser.Parse("CREATE TABLE t id INT")
	require.NotNil(t, res.Err)
	assert.Equal(t, 15, res.Err.Offset)
	assert.Equal(t, "parse error at offset 15: expected '(' after table name", res.Err.Error())
}

func TestParse_Deterministic(t *testing.T) {
	for _, sql := range []string{
		"CREATE TABLE t (a INT PRIMARY KEY, b VARCHAR(50))",
		"INSERT INTO t VALUES (1, 'x')",
		"SELECT 1",
	} {
		assert.Equal(t, parser.Parse(sql), parser.Parse(sql), sql)
	}
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := []string{
		"(((", ")))", "CREATE TABLE t (a INT CHECK (", "INSERT INTO t (", "'", "\"",
		"SELECT FROM FROM", "CREATE TABLE t (a REFERENCES", "DROP TABLE IF", ";;;", "CREATE TABLE t (a DEFAULT",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			res := parser.Parse(in)
			assert.NotNil(t, res.Stmt)
		}, in)
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(parser.Parse("CREATE TABLE t (id INT)"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "CREATE_TABLE", got["kind"])
	assert.Equal(t, true, got["isValid"])
	assert.NotContains(t, got, "error")
	stmt, ok := got["statement"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "t", stmt["tableName"])
}
