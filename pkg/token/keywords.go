package token

import "strings"

// keywords holds statement verbs, clause words and constraint words.
var keywords = map[string]struct{}{
	// statements
	"SELECT": {}, "INSERT": {}, "UPDATE": {}, "DELETE": {}, "CREATE": {}, "DROP": {},
	"ALTER": {}, "TRUNCATE": {}, "EXEC": {}, "EXECUTE": {}, "BEGIN": {}, "COMMIT": {},
	"ROLLBACK": {},

	// clauses
	"FROM": {}, "WHERE": {}, "INTO": {}, "VALUES": {}, "SET": {}, "TABLE": {}, "DATABASE": {},
	"INDEX": {}, "VIEW": {}, "COLUMN": {}, "ADD": {}, "RENAME": {}, "TO": {}, "AS": {},
	"ON": {}, "JOIN": {}, "INNER": {}, "LEFT": {}, "RIGHT": {}, "OUTER": {}, "FULL": {},
	"CROSS": {}, "GROUP": {}, "ORDER": {}, "BY": {}, "HAVING": {}, "LIMIT": {}, "OFFSET": {},
	"ASC": {}, "DESC": {}, "DISTINCT": {}, "ALL": {}, "UNION": {}, "WITH": {}, "CASE": {},
	"WHEN": {}, "THEN": {}, "ELSE": {}, "END": {}, "IF": {}, "EXISTS": {}, "CASCADE": {},

	// predicates and literals
	"AND": {}, "OR": {}, "NOT": {}, "IN": {}, "LIKE": {}, "BETWEEN": {}, "IS": {},
	"NULL": {}, "TRUE": {}, "FALSE": {},

	// constraints
	"PRIMARY": {}, "FOREIGN": {}, "KEY": {}, "REFERENCES": {}, "UNIQUE": {}, "DEFAULT": {},
	"CHECK": {}, "CONSTRAINT": {}, "AUTO_INCREMENT": {}, "AUTOINCREMENT": {},

	// aggregates
	"COUNT": {}, "SUM": {}, "AVG": {}, "MIN": {}, "MAX": {},
}

// dataTypes holds the recognized column type names.
var dataTypes = map[string]struct{}{
	"INT": {}, "INTEGER": {}, "BIGINT": {}, "SMALLINT": {}, "TINYINT": {},
	"DECIMAL": {}, "NUMERIC": {}, "FLOAT": {}, "DOUBLE": {}, "REAL": {},
	"VARCHAR": {}, "CHAR": {}, "TEXT": {}, "STRING": {},
	"BOOLEAN": {}, "BOOL": {},
	"DATE": {}, "TIME": {}, "DATETIME": {}, "TIMESTAMP": {},
	"BLOB": {}, "JSON": {}, "UUID": {},
}

// statementKeywords are the verbs a statement may start with.
var statementKeywords = []string{"CREATE", "INSERT", "SELECT", "UPDATE", "DELETE", "DROP", "ALTER"}

// Lookup case-folds word and reports whether it is a keyword or a data type
// name. The returned string is the uppercase form.
func Lookup(word string) (string, bool) {
	upper := strings.ToUpper(word)
	if _, ok := keywords[upper]; ok {
		return upper, true
	}
	if _, ok := dataTypes[upper]; ok {
		return upper, true
	}
	return upper, false
}

// IsDataType reports whether word (any case) names a data type.
func IsDataType(word string) bool {
	_, ok := dataTypes[strings.ToUpper(word)]
	return ok
}

// IsStatementKeyword reports whether word (any case) starts a supported statement.
func IsStatementKeyword(word string) bool {
	upper := strings.ToUpper(word)
	for _, kw := range statementKeywords {
		if kw == upper {
			return true
		}
	}
	return false
}

// Keywords returns the keyword set, sorted.
func Keywords() []string {
	return sortedKeys(keywords)
}

// DataTypes returns the data type names, sorted.
func DataTypes() []string {
	return sortedKeys(dataTypes)
}
