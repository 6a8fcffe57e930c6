package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/minisql/pkg/core"
)

// Store is the relational store: table schemas and their rows, keyed by
// lowercase table name. A name is present in schemas iff it is present in
// rows.
type Store struct {
	schemas map[string]core.TableSchema
	rows    map[string][]core.Row
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		schemas: make(map[string]core.TableSchema),
		rows:    make(map[string][]core.Row),
	}
}

func key(name string) string {
	return strings.ToLower(name)
}

// Has reports whether the table exists.
func (s *Store) Has(name string) bool {
	_, ok := s.schemas[key(name)]
	return ok
}

// Create adds a table with no rows.
func (s *Store) Create(schema core.TableSchema) error {
	k := key(schema.Name)
	if _, ok := s.schemas[k]; ok {
		return fmt.Errorf("%w: %s", ErrTableExists, schema.Name)
	}
	s.schemas[k] = schema
	s.rows[k] = []core.Row{}
	return nil
}

// Drop removes a table and its rows.
func (s *Store) Drop(name string) error {
	k := key(name)
	if _, ok := s.schemas[k]; !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	delete(s.schemas, k)
	delete(s.rows, k)
	return nil
}

// Schema returns the schema of a table.
func (s *Store) Schema(name string) (core.TableSchema, error) {
	schema, ok := s.schemas[key(name)]
	if !ok {
		return core.TableSchema{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return schema, nil
}

// Rows returns the rows of a table. The slice is owned by the store.
func (s *Store) Rows(name string) ([]core.Row, error) {
	k := key(name)
	if _, ok := s.schemas[k]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return s.rows[k], nil
}

// Append adds a row to a table.
func (s *Store) Append(name string, row core.Row) error {
	k := key(name)
	if _, ok := s.schemas[k]; !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	s.rows[k] = append(s.rows[k], row)
	return nil
}

// Truncate removes every row of a table and returns how many were removed.
func (s *Store) Truncate(name string) (int, error) {
	k := key(name)
	if _, ok := s.schemas[k]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	n := len(s.rows[k])
	s.rows[k] = []core.Row{}
	return n, nil
}

// Names returns the declared table names sorted case-insensitively.
func (s *Store) Names() []string {
	keys := make([]string, 0, len(s.schemas))
	for k := range s.schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = s.schemas[k].Name
	}
	return names
}

// Len returns the number of tables.
func (s *Store) Len() int {
	return len(s.schemas)
}
