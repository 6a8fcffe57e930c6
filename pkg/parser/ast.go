package parser

import "encoding/json"

// StatementKind identifies the verb of a parsed statement.
type StatementKind int

// Statement kinds.
const (
	KindUnknown StatementKind = iota
	KindCreateTable
	KindInsert
	KindSelect
	KindUpdate
	KindDelete
	KindDropTable
	KindAlterTable
)

var kindNames = [...]string{
	KindUnknown:     "UNKNOWN",
	KindCreateTable: "CREATE_TABLE",
	KindInsert:      "INSERT",
	KindSelect:      "SELECT",
	KindUpdate:      "UPDATE",
	KindDelete:      "DELETE",
	KindDropTable:   "DROP_TABLE",
	KindAlterTable:  "ALTER_TABLE",
}

func (k StatementKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// MarshalText encodes the kind by name.
func (k StatementKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Statement is the closed set of parsed statements. Each variant holds only
// the fields its kind needs.
type Statement interface {
	Kind() StatementKind
	// TableName returns the target table, or "" when none was found.
	TableName() string
	stmtNode()
}

// ColumnDef is one column of a CREATE TABLE.
type ColumnDef struct {
	Name string `json:"name"`
	// Type is the declared type including any size suffix, e.g. "VARCHAR(255)".
	// It is "TEXT" when the column declared no type.
	Type         string   `json:"type"`
	TypeDeclared bool     `json:"typeDeclared"`
	Constraints  []string `json:"constraints"`
}

// HasConstraint reports whether the column carries the given constraint.
func (c ColumnDef) HasConstraint(name string) bool {
	for _, con := range c.Constraints {
		if con == name {
			return true
		}
	}
	return false
}

// CreateTableStmt is CREATE TABLE [IF NOT EXISTS] name (columns...).
type CreateTableStmt struct {
	Table       string      `json:"tableName"`
	IfNotExists bool        `json:"ifNotExists,omitempty"`
	Columns     []ColumnDef `json:"columns"`
	// Constraints holds table-level constraints such as "PRIMARY KEY (a, b)".
	Constraints []string `json:"constraints,omitempty"`
}

// InsertStmt is INSERT INTO name [(cols)] VALUES (literals).
type InsertStmt struct {
	Table string `json:"tableName"`
	// Columns is nil when the statement omits the column list.
	Columns []string `json:"columns,omitempty"`
	// Values holds the raw token text of each literal.
	Values []string `json:"values"`
}

// SelectStmt is SELECT projection FROM name tail.
type SelectStmt struct {
	Table      string `json:"tableName"`
	Projection string `json:"projection"`
	Tail       string `json:"tail,omitempty"`
}

// UpdateStmt is UPDATE name tail. SET and WHERE are not parsed.
type UpdateStmt struct {
	Table    string `json:"tableName"`
	Tail     string `json:"tail,omitempty"`
	HasWhere bool   `json:"hasWhere"`
}

// DeleteStmt is DELETE FROM name tail.
type DeleteStmt struct {
	Table    string `json:"tableName"`
	Tail     string `json:"tail,omitempty"`
	HasWhere bool   `json:"hasWhere"`
}

// DropTableStmt is DROP TABLE [IF EXISTS] name.
type DropTableStmt struct {
	Table    string `json:"tableName"`
	IfExists bool   `json:"ifExists,omitempty"`
	Tail     string `json:"tail,omitempty"`
}

// AlterTableStmt is ALTER TABLE name tail. The action is not parsed.
type AlterTableStmt struct {
	Table string `json:"tableName"`
	Tail  string `json:"tail,omitempty"`
}

// UnknownStmt is produced when the input does not start with a supported verb.
type UnknownStmt struct {
	Message string `json:"message"`
}

func (*CreateTableStmt) Kind() StatementKind { return KindCreateTable }
func (*InsertStmt) Kind() StatementKind      { return KindInsert }
func (*SelectStmt) Kind() StatementKind      { return KindSelect }
func (*UpdateStmt) Kind() StatementKind      { return KindUpdate }
func (*DeleteStmt) Kind() StatementKind      { return KindDelete }
func (*DropTableStmt) Kind() StatementKind   { return KindDropTable }
func (*AlterTableStmt) Kind() StatementKind  { return KindAlterTable }
func (*UnknownStmt) Kind() StatementKind     { return KindUnknown }

func (s *CreateTableStmt) TableName() string { return s.Table }
func (s *InsertStmt) TableName() string      { return s.Table }
func (s *SelectStmt) TableName() string      { return s.Table }
func (s *UpdateStmt) TableName() string      { return s.Table }
func (s *DeleteStmt) TableName() string      { return s.Table }
func (s *DropTableStmt) TableName() string   { return s.Table }
func (s *AlterTableStmt) TableName() string  { return s.Table }
func (*UnknownStmt) TableName() string       { return "" }

func (*CreateTableStmt) stmtNode() {}
func (*InsertStmt) stmtNode()      {}
func (*SelectStmt) stmtNode()      {}
func (*UpdateStmt) stmtNode()      {}
func (*DeleteStmt) stmtNode()      {}
func (*DropTableStmt) stmtNode()   {}
func (*AlterTableStmt) stmtNode()  {}
func (*UnknownStmt) stmtNode()     {}

// Result is the outcome of Parse: the statement variant plus its validity.
// Stmt is never nil. When Valid is false, Err explains why and Stmt holds
// whatever was recognized before the failure.
type Result struct {
	Stmt  Statement
	Valid bool
	Err   *ParseError
}

// Kind returns the kind of the parsed statement.
func (r *Result) Kind() StatementKind {
	return r.Stmt.Kind()
}

// Error returns the error message, or "" when the statement is valid.
func (r *Result) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Message
}

// MarshalJSON renders the result with its kind tag.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      StatementKind `json:"kind"`
		Valid     bool          `json:"isValid"`
		Error     string        `json:"error,omitempty"`
		Statement Statement     `json:"statement"`
	}{
		Kind:      r.Kind(),
		Valid:     r.Valid,
		Error:     r.Error(),
		Statement: r.Stmt,
	})
}
