package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/minisql/internal/testutil"
	"github.com/leapstack-labs/minisql/pkg/core"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(Config{Logger: testutil.NewTestLogger(t)})
}

// mustExec executes sql and fails the test unless it succeeds.
func mustExec(t *testing.T, e *Engine, sql string) *Result {
	t.Helper()
	res := e.Execute(sql)
	require.True(t, res.Success, "%s: %s", sql, res.Error)
	return res
}

const createUsers = "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(50), active BOOLEAN)"

func TestEngine_CreateInsertSelect(t *testing.T) {
	e := newTestEngine(t)

	res := mustExec(t, e, createUsers)
	assert.Equal(t, "Table 'users' created successfully", res.Message)
	assert.Nil(t, res.RowsAffected)

	res = mustExec(t, e, "INSERT INTO users (id, name, active) VALUES (1, 'Ada', TRUE)")
	require.NotNil(t, res.RowsAffected)
	assert.Equal(t, 1, *res.RowsAffected)
	mustExec(t, e, "INSERT INTO users VALUES (2, 'Bob')")

	res = mustExec(t, e, "SELECT * FROM USERS")
	assert.Equal(t, []string{"id", "name", "active"}, res.Columns)
	assert.Equal(t, 2, res.RowCount)
	assert.Equal(t, [][]any{
		{int64(1), "Ada", true},
		{int64(2), "Bob", nil},
	}, res.Rows)
	require.NotNil(t, res.Validation)
	assert.NotEmpty(t, res.Validation.Suggestions, "SELECT * carries a suggestion")
}

func TestEngine_InsertColumnMapping(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, createUsers)

	// explicit columns in a different order, matched case-insensitively
	mustExec(t, e, "INSERT INTO users (NAME, id) VALUES ('Cy', 3)")
	// extra positional values are ignored
	mustExec(t, e, "INSERT INTO users VALUES (4, 'Di', FALSE, 'extra')")

	res := mustExec(t, e, "SELECT id, name FROM users")
	assert.Equal(t, [][]any{
		{int64(3), "Cy", nil},
		{int64(4), "Di", false},
	}, res.Rows)
}

func TestEngine_CreateExisting(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, createUsers)
	mustExec(t, e, "INSERT INTO users (id) VALUES (1)")

	res := e.Execute(createUsers)
	assert.False(t, res.Success)
	assert.Equal(t, "Table 'users' already exists", res.Error)
	assert.True(t, errors.Is(res.Err(), ErrTableExists))

	res = mustExec(t, e, "CREATE TABLE IF NOT EXISTS users (x INT PRIMARY KEY)")
	assert.Contains(t, res.Message, "already exists")

	schema, ok := e.Schema("users")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "name", "active"}, schema.ColumnNames())
	assert.Equal(t, 1, mustExec(t, e, "SELECT * FROM users").RowCount)
}

func TestEngine_MissingTable(t *testing.T) {
	statements := []string{
		"INSERT INTO ghost (id) VALUES (1)",
		"SELECT * FROM ghost",
		"UPDATE ghost SET a = 1 WHERE id = 1",
		"DELETE FROM ghost WHERE id = 1",
		"DROP TABLE ghost",
		"ALTER TABLE ghost ADD COLUMN b INT",
	}
	e := newTestEngine(t)
	for _, sql := range statements {
		t.Run(sql, func(t *testing.T) {
			res := e.Execute(sql)
			assert.False(t, res.Success)
			assert.Equal(t, "Table 'ghost' does not exist", res.Error)
			assert.True(t, errors.Is(res.Err(), ErrTableNotFound))
		})
	}
}

func TestEngine_DeleteAndUpdate(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, createUsers)
	mustExec(t, e, "INSERT INTO users (id) VALUES (1)")
	mustExec(t, e, "INSERT INTO users (id) VALUES (2)")

	res := mustExec(t, e, "UPDATE users SET name = 'x'")
	assert.Equal(t, 0, *res.RowsAffected)

	res = mustExec(t, e, "DELETE FROM users WHERE id = 1")
	assert.Equal(t, 0, *res.RowsAffected)
	assert.Equal(t, 2, mustExec(t, e, "SELECT * FROM users").RowCount)

	res = mustExec(t, e, "DELETE FROM users")
	assert.Equal(t, 2, *res.RowsAffected)
	assert.Equal(t, 0, mustExec(t, e, "SELECT * FROM users").RowCount)
}

func TestEngine_DropAndAlter(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, createUsers)
	mustExec(t, e, "ALTER TABLE users ADD COLUMN age INT")

	mustExec(t, e, "DROP TABLE users")
	assert.Empty(t, e.Tables())
	assert.False(t, e.store.Has("users"))
	_, rowsErr := e.store.Rows("users")
	assert.ErrorIs(t, rowsErr, ErrTableNotFound)

	assert.False(t, e.Execute("DROP TABLE users").Success)
	mustExec(t, e, "DROP TABLE IF EXISTS users")

	// the name is free again
	mustExec(t, e, createUsers)
}

func TestEngine_ValidationBlocks(t *testing.T) {
	e := newTestEngine(t)

	res := e.Execute("CREATE TABLE t (a INT, a INT)")
	assert.False(t, res.Success)
	assert.True(t, errors.Is(res.Err(), ErrValidation))
	require.NotNil(t, res.Validation)
	assert.False(t, res.Validation.Valid)
	assert.Contains(t, res.Error, "Duplicate column name 'a'")
	assert.Empty(t, e.Tables())

	res = e.Execute("")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "SQL query cannot be empty")

	res = e.Execute("CREATE users")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "expected TABLE after CREATE")
}

func TestEngine_OnExecuteHook(t *testing.T) {
	var seen []string
	e := New(Config{
		Logger: testutil.NewTestLogger(t),
		OnExecute: func(sql string, res *Result) {
			seen = append(seen, sql)
			assert.GreaterOrEqual(t, res.ExecutionTime.Nanoseconds(), int64(0))
		},
	})
	e.Execute(createUsers)
	e.Execute("SELECT * FROM nope")
	assert.Equal(t, []string{createUsers, "SELECT * FROM nope"}, seen)
}

func TestEngine_PanickingHookIsContained(t *testing.T) {
	e := New(Config{
		Logger:    testutil.NewTestLogger(t),
		OnExecute: func(string, *Result) { panic("hook failed") },
	})

	var res *Result
	require.NotPanics(t, func() { res = e.Execute(createUsers) })
	assert.True(t, res.Success)
	assert.Equal(t, []string{"users"}, e.Tables())
}

func TestEngine_IDsAreUnique(t *testing.T) {
	a, b := New(Config{}), New(Config{})
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestEngine_Reset(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, createUsers)
	e.Reset()
	assert.Empty(t, e.Tables())
}

func TestResult_JSON(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, createUsers)
	res := mustExec(t, e, "INSERT INTO users (id) VALUES (7)")

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, float64(1), decoded["rowsAffected"])
	assert.Contains(t, decoded, "executionTimeMs")
	assert.Contains(t, decoded, "validation")
}

func TestStore_Invariant(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(core.TableSchema{Name: "Orders"}))
	assert.ErrorIs(t, s.Create(core.TableSchema{Name: "orders"}), ErrTableExists)

	rows, err := s.Rows("ORDERS")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Equal(t, []string{"Orders"}, s.Names())

	require.NoError(t, s.Drop("orders"))
	assert.Len(t, s.schemas, 0)
	assert.Len(t, s.rows, 0)
	assert.ErrorIs(t, s.Drop("orders"), ErrTableNotFound)
}
