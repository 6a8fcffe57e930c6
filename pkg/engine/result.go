package engine

import (
	"encoding/json"
	"time"

	"github.com/leapstack-labs/minisql/pkg/lint"
)

// Result is the outcome of executing one statement.
type Result struct {
	Success bool     `json:"success"`
	Columns []string `json:"columns,omitempty"`
	Rows    [][]any  `json:"rows,omitempty"`
	// RowCount is the number of rows returned by SELECT.
	RowCount int    `json:"rowCount"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	// ExecutionTime covers validation, parsing and dispatch.
	ExecutionTime time.Duration `json:"-"`
	// RowsAffected is set for INSERT, UPDATE and DELETE.
	RowsAffected *int         `json:"rowsAffected,omitempty"`
	Validation   *lint.Result `json:"validation,omitempty"`

	err error
}

// Err returns the error behind a failed result, or nil on success.
// It wraps one of the package sentinels.
func (r *Result) Err() error {
	return r.err
}

// MarshalJSON adds executionTimeMs to the encoded result.
func (r *Result) MarshalJSON() ([]byte, error) {
	type alias Result
	return json.Marshal(struct {
		*alias
		ExecutionTimeMs float64 `json:"executionTimeMs"`
	}{
		alias:           (*alias)(r),
		ExecutionTimeMs: float64(r.ExecutionTime.Microseconds()) / 1000,
	})
}

func success(msg string) *Result {
	return &Result{Success: true, Message: msg}
}

func failure(err error) *Result {
	return &Result{Error: err.Error(), err: err}
}

func affected(n int) *int {
	return &n
}
