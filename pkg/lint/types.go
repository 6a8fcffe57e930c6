package lint

import (
	"github.com/leapstack-labs/minisql/pkg/core"
	"github.com/leapstack-labs/minisql/pkg/parser"
)

// Severity aliases for rule authors.
const (
	SeverityError   = core.SeverityError
	SeverityWarning = core.SeverityWarning
	SeverityHint    = core.SeverityHint
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition. Rules are stateless; all
// context comes through the statement passed to Check.
type RuleDef struct {
	ID          string        // Unique identifier, e.g. "CT03"
	Name        string        // Human-readable name, e.g. "create.duplicate_column"
	Group       string        // Category, e.g. "create", "insert"
	Description string        // Human-readable description
	Severity    core.Severity // Most severe diagnostic the rule emits
	Check       CheckFunc

	// Statements restricts the rule to specific statement kinds.
	// nil/empty means every successfully parsed statement.
	Statements []parser.StatementKind
}

// CheckFunc analyzes a parsed statement and returns diagnostics.
type CheckFunc func(stmt parser.Statement) []Diagnostic

// AppliesTo reports whether the rule runs for the given statement kind.
func (r RuleDef) AppliesTo(kind parser.StatementKind) bool {
	if len(r.Statements) == 0 {
		return true
	}
	for _, k := range r.Statements {
		if k == kind {
			return true
		}
	}
	return false
}

// Info returns the rule metadata for documentation and tooling.
func (r RuleDef) Info() core.RuleInfo {
	info := core.RuleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Group:       r.Group,
		Description: r.Description,
	}
	for _, k := range r.Statements {
		info.Statements = append(info.Statements, k.String())
	}
	return info
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a validation finding.
type Diagnostic struct {
	RuleID   string        `json:"ruleId"`
	Severity core.Severity `json:"severity"`
	Message  string        `json:"message"`
}

func errorf(ruleID, msg string) Diagnostic {
	return Diagnostic{RuleID: ruleID, Severity: SeverityError, Message: msg}
}

func warnf(ruleID, msg string) Diagnostic {
	return Diagnostic{RuleID: ruleID, Severity: SeverityWarning, Message: msg}
}

func hintf(ruleID, msg string) Diagnostic {
	return Diagnostic{RuleID: ruleID, Severity: SeverityHint, Message: msg}
}

// Result is the outcome of validating one piece of SQL text.
// Valid is true iff Errors is empty.
type Result struct {
	Valid       bool         `json:"isValid"`
	Errors      []string     `json:"errors"`
	Warnings    []string     `json:"warnings"`
	Suggestions []string     `json:"suggestions"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

func newResult() *Result {
	return &Result{
		Valid:       true,
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
		Diagnostics: []Diagnostic{},
	}
}

// add files a diagnostic under the list matching its severity.
func (r *Result) add(diags ...Diagnostic) {
	for _, d := range diags {
		r.Diagnostics = append(r.Diagnostics, d)
		switch d.Severity {
		case SeverityError:
			r.Errors = append(r.Errors, d.Message)
			r.Valid = false
		case SeverityWarning:
			r.Warnings = append(r.Warnings, d.Message)
		default:
			r.Suggestions = append(r.Suggestions, d.Message)
		}
	}
}

// HasIssues reports whether the result carries any errors or warnings.
func (r *Result) HasIssues() bool {
	return len(r.Errors) > 0 || len(r.Warnings) > 0
}
