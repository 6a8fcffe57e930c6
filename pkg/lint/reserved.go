package lint

import (
	"regexp"
	"strings"
)

// reservedWords may not be used as table names and should not be used as
// column names. The set is narrower than the tokenizer's keyword set: type
// names like DATE or TEXT are fine as column names.
var reservedWords = map[string]struct{}{
	"SELECT": {}, "FROM": {}, "WHERE": {}, "INSERT": {}, "INTO": {}, "VALUES": {},
	"UPDATE": {}, "SET": {}, "DELETE": {}, "CREATE": {}, "DROP": {}, "ALTER": {},
	"TABLE": {}, "INDEX": {}, "VIEW": {}, "DATABASE": {}, "TRUNCATE": {},
	"ORDER": {}, "GROUP": {}, "BY": {}, "HAVING": {}, "LIMIT": {}, "OFFSET": {},
	"JOIN": {}, "INNER": {}, "LEFT": {}, "RIGHT": {}, "OUTER": {}, "ON": {},
	"UNION": {}, "AND": {}, "OR": {}, "NOT": {}, "NULL": {}, "IS": {}, "IN": {},
	"LIKE": {}, "BETWEEN": {}, "EXISTS": {}, "DISTINCT": {}, "AS": {},
	"PRIMARY": {}, "FOREIGN": {}, "KEY": {}, "REFERENCES": {}, "UNIQUE": {},
	"DEFAULT": {}, "CHECK": {}, "CONSTRAINT": {}, "CASE": {}, "WHEN": {},
	"THEN": {}, "ELSE": {}, "END": {}, "ALL": {}, "ANY": {},
}

var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsReserved reports whether name is a reserved word (case-insensitive).
func IsReserved(name string) bool {
	_, ok := reservedWords[strings.ToUpper(name)]
	return ok
}

// IsValidName reports whether name is a plain unquoted identifier.
func IsValidName(name string) bool {
	return validName.MatchString(name)
}
