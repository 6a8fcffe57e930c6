package parser

import "fmt"

// ParseError represents a parsing error with the byte offset it occurred at.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

// Common error messages
const (
	ErrEmptyStatement     = "empty statement"
	ErrUnsupported        = "unsupported statement type: %s"
	ErrExpectedAfter      = "expected %s after %s"
	ErrExpectedTableName  = "expected table name after %s"
	ErrExpectedColumnName = "expected column name"
	ErrUnclosedList       = "expected ')' to close %s"
	ErrInternal           = "internal parser error: %v"
)
