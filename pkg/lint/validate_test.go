package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/minisql/pkg/parser"
)

// ruleDiags returns the diagnostics of res produced by ruleID.
func ruleDiags(res *Result, ruleID string) []Diagnostic {
	var out []Diagnostic
	for _, d := range res.Diagnostics {
		if d.RuleID == ruleID {
			out = append(out, d)
		}
	}
	return out
}

func TestValidate_Empty(t *testing.T) {
	for _, sql := range []string{"", "   ", "\n\t"} {
		res := Validate(sql)
		assert.False(t, res.Valid)
		assert.Equal(t, []string{"SQL query cannot be empty"}, res.Errors)
		assert.Empty(t, res.Warnings)
		assert.Empty(t, res.Suggestions)
	}
}

func TestValidate_CleanCreate(t *testing.T) {
	res := Validate("CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(50))")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.Suggestions)
}

func TestValidate_CreateRules(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		ruleID    string
		wantValid bool
		wantMsg   string
	}{
		{
			name:    "reserved table name",
			sql:     "CREATE TABLE select (id INT PRIMARY KEY)",
			ruleID:  "CT01",
			wantMsg: "Table name 'select' is a reserved word",
		},
		{
			name:      "reserved column name",
			sql:       "CREATE TABLE t (order INT PRIMARY KEY)",
			ruleID:    "CT02",
			wantValid: true,
			wantMsg:   "Column name 'order' is a reserved word",
		},
		{
			name:    "duplicate column",
			sql:     "CREATE TABLE t (id INT PRIMARY KEY, ID TEXT)",
			ruleID:  "CT03",
			wantMsg: "Duplicate column name 'ID'",
		},
		{
			name:    "missing type",
			sql:     "CREATE TABLE t (id INT PRIMARY KEY, title)",
			ruleID:  "CT04",
			wantMsg: "Column 'title' must have a data type",
		},
		{
			name:    "multiple primary keys",
			sql:     "CREATE TABLE t (a INT PRIMARY KEY, b INT PRIMARY KEY)",
			ruleID:  "CT05",
			wantMsg: "Table 't' has multiple PRIMARY KEY constraints",
		},
		{
			name:      "no primary key",
			sql:       "CREATE TABLE t (a INT)",
			ruleID:    "CT06",
			wantValid: true,
			wantMsg:   "Consider adding a PRIMARY KEY to table 't'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.sql)
			assert.Equal(t, tt.wantValid, res.Valid)
			diags := ruleDiags(res, tt.ruleID)
			require.NotEmpty(t, diags, "expected %s diagnostic", tt.ruleID)
			assert.Equal(t, tt.wantMsg, diags[0].Message)
		})
	}
}

func TestValidate_TableLevelPrimaryKey(t *testing.T) {
	res := Validate("CREATE TABLE t (a INT, b INT, PRIMARY KEY (a, b))")
	assert.True(t, res.Valid)
	assert.Empty(t, ruleDiags(res, "CT06"))
	assert.Empty(t, ruleDiags(res, "CT05"))
}

func TestValidate_Insert(t *testing.T) {
	t.Run("column count mismatch", func(t *testing.T) {
		res := Validate("INSERT INTO users (id, name) VALUES (1)")
		assert.False(t, res.Valid)
		assert.Equal(t, []string{"Column count (2) does not match value count (1)"}, res.Errors)
	})

	t.Run("empty values", func(t *testing.T) {
		res := Validate("INSERT INTO users (id) VALUES ()")
		assert.False(t, res.Valid)
		assert.Len(t, ruleDiags(res, "IN02"), 1)
		assert.Empty(t, ruleDiags(res, "IN03"))
	})

	t.Run("implicit columns", func(t *testing.T) {
		res := Validate("INSERT INTO users VALUES (1, 'a')")
		assert.True(t, res.Valid)
		assert.Len(t, res.Warnings, 1)
		require.Len(t, res.Suggestions, 1)
		assert.Contains(t, res.Suggestions[0], "INSERT INTO users (col1, col2, ...)")
	})

	t.Run("explicit columns", func(t *testing.T) {
		res := Validate("INSERT INTO users (id, name) VALUES (1, 'a')")
		assert.True(t, res.Valid)
		assert.Empty(t, res.Warnings)
	})
}

func TestValidate_SelectStar(t *testing.T) {
	res := Validate("SELECT * FROM users")
	assert.True(t, res.Valid)
	assert.Len(t, ruleDiags(res, "SE02"), 1)

	res = Validate("SELECT id, name FROM users")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Suggestions)
}

func TestValidate_UpdateDelete(t *testing.T) {
	res := Validate("UPDATE users SET name = 'x'")
	assert.True(t, res.Valid)
	assert.Equal(t, []string{"UPDATE without WHERE clause will affect all rows"}, res.Warnings)

	res = Validate("UPDATE users SET name = 'x' WHERE id = 1")
	assert.Empty(t, res.Warnings)

	res = Validate("DELETE FROM users")
	assert.True(t, res.Valid)
	assert.Equal(t, []string{"DELETE without WHERE clause will remove all rows"}, res.Warnings)
	require.Len(t, res.Suggestions, 2)
	assert.Contains(t, res.Suggestions[1], "TRUNCATE TABLE users")

	res = Validate("DELETE FROM users WHERE id = 1")
	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.Suggestions)
}

func TestValidate_DropAlter(t *testing.T) {
	res := Validate("DROP TABLE users")
	assert.True(t, res.Valid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "permanently delete table 'users'")

	res = Validate("ALTER TABLE users ADD COLUMN age INT")
	assert.True(t, res.Valid)
	require.Len(t, res.Suggestions, 1)
	assert.Contains(t, res.Suggestions[0], "backing up table 'users'")
}

func TestValidate_RiskAndMultiStatement(t *testing.T) {
	res := Validate("SELECT * FROM users; DROP TABLE users")
	assert.True(t, res.Valid)
	assert.Equal(t, []string{riskMessage, multiStmtMessage}, res.Warnings)

	res = Validate("SELECT * FROM users; SELECT * FROM orders")
	assert.Equal(t, []string{multiStmtMessage}, res.Warnings)

	res = Validate("SELECT * FROM users;")
	assert.Empty(t, res.Warnings, "a trailing semicolon is a single statement")

	res = Validate("EXEC xp_cmdshell 'dir'")
	assert.False(t, res.Valid)
	assert.Equal(t, []string{riskMessage}, res.Warnings, "only the first risk match is reported")
}

func TestValidate_ParseErrors(t *testing.T) {
	res := Validate("CREATE users")
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Syntax error: expected TABLE after CREATE", res.Errors[0])

	res = Validate("TRUNCATE users")
	assert.False(t, res.Valid)
	assert.Len(t, ruleDiags(res, RuleParseError), 1)
}

func TestValidate_ParseInvalidImpliesInvalid(t *testing.T) {
	inputs := []string{
		"CREATE TABLE",
		"CREATE TABLE t",
		"CREATE TABLE t ()",
		"INSERT users VALUES (1)",
		"INSERT INTO t (a, b VALUES (1, 2)",
		"SELECT * users",
		"DELETE users",
		"DROP t",
		"ALTER t",
		"hello world",
		"42",
	}
	for _, sql := range inputs {
		t.Run(sql, func(t *testing.T) {
			require.False(t, parser.Parse(sql).Valid)
			assert.False(t, Validate(sql).Valid)
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"empty", ""},
		{"clean create", "CREATE TABLE users (id INT PRIMARY KEY, name TEXT)"},
		{"create without key", "CREATE TABLE t (a INT, b TEXT)"},
		{"implicit insert", "INSERT INTO users VALUES (1, 'Alice')"},
		{"count mismatch", "INSERT INTO users (id, name) VALUES (1)"},
		{"select star", "SELECT * FROM users"},
		{"delete without where", "DELETE FROM users"},
		{"risk", "DROP TABLE users"},
		{"multi statement", "SELECT * FROM a; SELECT * FROM b"},
		{"parse error", "INSERT INTO t (a,) VALUES (1)"},
		{"unsupported", "TRUNCATE TABLE users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Validate(tt.sql)
			second := Validate(tt.sql)
			assert.Equal(t, first, second)
		})
	}
}

func TestResult_ValidTracksErrors(t *testing.T) {
	inputs := []string{
		"SELECT * FROM users",
		"CREATE TABLE t (a INT, a INT)",
		"DELETE FROM t",
		"",
	}
	for _, sql := range inputs {
		res := Validate(sql)
		assert.Equal(t, len(res.Errors) == 0, res.Valid, sql)
		assert.Len(t, res.Diagnostics, len(res.Errors)+len(res.Warnings)+len(res.Suggestions), sql)
	}
}

func TestRegistry(t *testing.T) {
	rule, ok := GetByID("CT03")
	require.True(t, ok)
	assert.Equal(t, "create", rule.Group)
	assert.True(t, rule.AppliesTo(parser.KindCreateTable))
	assert.False(t, rule.AppliesTo(parser.KindInsert))
	assert.Equal(t, []string{"CREATE_TABLE"}, rule.Info().Statements)

	_, ok = GetByID("XX99")
	assert.False(t, ok)

	ids := make(map[string]bool)
	for _, r := range GetAll() {
		assert.False(t, ids[r.ID], "duplicate rule id %s", r.ID)
		ids[r.ID] = true
	}
	assert.Len(t, GetByGroup("ddl"), 4)
}
