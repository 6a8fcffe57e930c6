package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		tables []string
		want   []string
	}{
		{
			name: "empty input offers statements",
			want: statementStarters,
		},
		{
			name:   "after CREATE",
			text:   "CREATE ",
			cursor: 7,
			want:   []string{"TABLE", "DATABASE", "INDEX", "VIEW"},
		},
		{
			name:   "text after cursor is ignored",
			text:   "CREATE TABLE users",
			cursor: 7,
			want:   []string{"TABLE", "DATABASE", "INDEX", "VIEW"},
		},
		{
			name:   "lowercase input",
			text:   "insert ",
			cursor: 7,
			want:   []string{"INTO"},
		},
		{
			name:   "table names after FROM",
			text:   "SELECT * FROM ",
			cursor: 14,
			tables: []string{"users", "orders", "users"},
			want:   []string{"users", "orders"},
		},
		{
			name:   "clause after table name",
			text:   "SELECT * FROM users ",
			cursor: 20,
			want:   []string{"WHERE", "ORDER BY", "GROUP BY", "LIMIT", "JOIN"},
		},
		{
			name:   "UPDATE target then SET",
			text:   "UPDATE users ",
			cursor: 13,
			want:   []string{"SET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestWithTables(tt.text, tt.cursor, tt.tables)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggest_WhereOffersPredicates(t *testing.T) {
	text := "SELECT * FROM users WHERE "
	got := Suggest(text, len(text))
	assert.Contains(t, got, "LIKE")
	assert.Contains(t, got, "IS NULL")
	assert.Contains(t, got, "AND")
}

func TestSuggest_SelectList(t *testing.T) {
	got := Suggest("SELECT ", 7)
	assert.Equal(t, []string{"*", "DISTINCT", "COUNT(*)", "SUM(", "AVG(", "MIN(", "MAX("}, got)
}

func TestSuggest_PartialWord(t *testing.T) {
	got := SuggestWithTables("SEL", 3, []string{"sellers"})
	assert.Contains(t, got, "SELECT")
	assert.Contains(t, got, "sellers")
	assert.NotContains(t, got, "SET")
}

func TestSuggest_CappedAndDeduplicated(t *testing.T) {
	tables := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11", "a1"}
	got := SuggestWithTables("DELETE FROM users; SELECT * FROM ", 33, tables)
	assert.Len(t, got, MaxSuggestions)

	seen := make(map[string]bool)
	for _, s := range got {
		assert.False(t, seen[s], "duplicate suggestion %q", s)
		seen[s] = true
	}
}

func TestSuggest_CursorOutOfRange(t *testing.T) {
	assert.Equal(t, []string{"INTO"}, Suggest("INSERT ", 100))
	assert.Equal(t, statementStarters, Suggest("INSERT ", -3))
}
