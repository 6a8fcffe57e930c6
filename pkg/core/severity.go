package core

import "strings"

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a validation diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError blocks execution of the statement.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityHint is a style or performance suggestion.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "suggestion"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "suggestion", "hint":
		return SeverityHint, true
	default:
		return SeverityWarning, false
	}
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a validation rule for documentation/tooling.
type RuleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Description string   `json:"description"`
	Statements  []string `json:"statements,omitempty"` // empty means every statement
}
