// Package lint validates single SQL statements and offers contextual
// completions.
//
// # Validation
//
// Validate runs in a fixed order:
//
//  1. Empty input is rejected outright.
//  2. The raw text is scanned for risky patterns (stacked destructive
//     statements, extended procedures, comment masking).
//  3. The text is parsed; a parse failure is reported as a single error.
//  4. Rules registered for the parsed statement kind run in registration
//     order.
//  5. Input holding more than one statement gets a warning.
//
// # Rule Registration
//
// Rules register themselves via init() with Register. Each rule declares
// the statement kinds it applies to:
//
//	func init() {
//	    lint.Register(lint.RuleDef{
//	        ID:         "SE02",
//	        Name:       "select.star",
//	        Group:      "select",
//	        Statements: []parser.StatementKind{parser.KindSelect},
//	        Check:      checkSelectStar,
//	    })
//	}
//
// # Rule Categories
//
//   - general (EM, PA, SC): empty input, parse errors, security
//   - create (CT): CREATE TABLE structure and naming
//   - insert (IN), select (SE), modify (UD): DML checks
//   - ddl (DR, AL): destructive schema changes
package lint
