package lint

import (
	"fmt"

	"github.com/leapstack-labs/minisql/pkg/parser"
)

func init() {
	Register(DropMissingTable)
	Register(DropDataLoss)
	Register(AlterMissingTable)
	Register(AlterBackup)
}

var (
	dropOnly  = []parser.StatementKind{parser.KindDropTable}
	alterOnly = []parser.StatementKind{parser.KindAlterTable}
)

// DropMissingTable rejects DROP TABLE without a table name.
var DropMissingTable = RuleDef{
	ID:          "DR01",
	Name:        "drop.missing_table",
	Group:       "ddl",
	Description: "DROP TABLE must name a table.",
	Severity:    SeverityError,
	Statements:  dropOnly,
	Check:       missingTable("DR01", "DROP TABLE"),
}

// DropDataLoss warns that dropping a table deletes its data.
var DropDataLoss = RuleDef{
	ID:          "DR02",
	Name:        "drop.data_loss",
	Group:       "ddl",
	Description: "DROP TABLE permanently deletes data.",
	Severity:    SeverityWarning,
	Statements:  dropOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		return []Diagnostic{warnf("DR02", fmt.Sprintf(
			"DROP TABLE will permanently delete table '%s' and all its data", stmt.TableName()))}
	},
}

// AlterMissingTable rejects ALTER TABLE without a table name.
var AlterMissingTable = RuleDef{
	ID:          "AL01",
	Name:        "alter.missing_table",
	Group:       "ddl",
	Description: "ALTER TABLE must name a table.",
	Severity:    SeverityError,
	Statements:  alterOnly,
	Check:       missingTable("AL01", "ALTER TABLE"),
}

// AlterBackup suggests backing up before a structural change.
var AlterBackup = RuleDef{
	ID:          "AL02",
	Name:        "alter.backup",
	Group:       "ddl",
	Description: "Back up a table before altering it.",
	Severity:    SeverityHint,
	Statements:  alterOnly,
	Check: func(stmt parser.Statement) []Diagnostic {
		return []Diagnostic{hintf("AL02", fmt.Sprintf(
			"Consider backing up table '%s' before altering its structure", stmt.TableName()))}
	},
}
