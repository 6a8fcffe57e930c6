// Package core defines the shared language of minisql.
//
// This package contains:
//   - Diagnostic severities and rule metadata
//   - Table schemas, rows and store snapshots
//
// The Golden Rule: pkg/core imports only the standard library.
// All other packages depend on core, not the reverse.
package core
