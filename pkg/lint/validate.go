package lint

import (
	"strings"

	"github.com/leapstack-labs/minisql/pkg/parser"
)

// Rule IDs of the checks that run outside the per-statement rules.
const (
	RuleEmpty         = "EM01"
	RuleRiskPattern   = "SC01"
	RuleMultiStmt     = "SC02"
	RuleParseError    = "PA01"
	emptyMessage      = "SQL query cannot be empty"
	multiStmtMessage  = "Multiple statements detected. Only the first statement will be executed."
	parseErrorMessage = "Syntax error: "
)

func init() {
	Register(RuleDef{
		ID:          RuleEmpty,
		Name:        "general.empty",
		Group:       "general",
		Description: "Query text must not be empty.",
		Severity:    SeverityError,
	})
	Register(RuleDef{
		ID:          RuleRiskPattern,
		Name:        "security.risky_pattern",
		Group:       "security",
		Description: "Text matches a pattern commonly used in SQL injection.",
		Severity:    SeverityWarning,
	})
	Register(RuleDef{
		ID:          RuleParseError,
		Name:        "general.parse_error",
		Group:       "general",
		Description: "Statement must parse.",
		Severity:    SeverityError,
	})
	Register(RuleDef{
		ID:          RuleMultiStmt,
		Name:        "security.multiple_statements",
		Group:       "security",
		Description: "Only the first of several statements is executed.",
		Severity:    SeverityWarning,
	})
}

// Validate checks one SQL statement and reports errors, warnings and
// suggestions. It never fails; problems are described in the Result.
func Validate(sql string) *Result {
	res := newResult()

	if strings.TrimSpace(sql) == "" {
		res.add(errorf(RuleEmpty, emptyMessage))
		return res
	}

	if matchRisk(sql) != nil {
		res.add(warnf(RuleRiskPattern, riskMessage))
	}

	parsed := parser.Parse(sql)
	if parsed.Valid {
		res.add(Check(parsed.Stmt)...)
	} else {
		res.add(errorf(RuleParseError, parseErrorMessage+parsed.Error()))
	}

	if countStatements(sql) > 1 {
		res.add(warnf(RuleMultiStmt, multiStmtMessage))
	}
	return res
}

// Check runs every registered rule that applies to the statement's kind.
func Check(stmt parser.Statement) []Diagnostic {
	var diags []Diagnostic
	kind := stmt.Kind()
	for _, rule := range GetAll() {
		if rule.Check == nil || !rule.AppliesTo(kind) {
			continue
		}
		diags = append(diags, rule.Check(stmt)...)
	}
	return diags
}

// countStatements counts the non-blank segments of sql split on ';'.
// The split is textual: a ';' inside a string literal also counts.
func countStatements(sql string) int {
	n := 0
	for _, seg := range strings.Split(sql, ";") {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}
