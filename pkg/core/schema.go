package core

import (
	"encoding/json"
	"math"
	"strings"
)

// Column describes one column of a table.
type Column struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Constraints []string `json:"constraints" yaml:"constraints"`
}

// TableSchema is the declared shape of a table. Column order defines the
// implicit insertion order of INSERT without a column list.
type TableSchema struct {
	Name    string   `json:"name" yaml:"name"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// ColumnNames returns the column names in declaration order.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name (case-insensitive).
func (s TableSchema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// Row maps column names to scalar values: string, int64, float64, bool or nil.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Snapshot is the serialized form of a whole relational store.
type Snapshot struct {
	Tables []TableSnapshot `json:"tables" yaml:"tables"`
}

// TableSnapshot is one table of a Snapshot.
type TableSnapshot struct {
	Name   string      `json:"name" yaml:"name"`
	Schema TableSchema `json:"schema" yaml:"schema"`
	Data   []Row       `json:"data" yaml:"data"`
}

// NormalizeValue converts decoded values (JSON numbers, YAML ints) to the
// scalar set used by rows. The second result is false for unsupported types.
func NormalizeValue(v any) (any, bool) {
	switch x := v.(type) {
	case nil, string, bool, int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return float64(x), true
		}
		return int64(x), true
	case float32:
		return normalizeFloat(float64(x)), true
	case float64:
		return normalizeFloat(x), true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		f, err := x.Float64()
		if err != nil {
			return nil, false
		}
		return f, true
	}
	return nil, false
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}
