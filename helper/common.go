package helper

import "regexp"

var IdentifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsValidIdentifier reports whether s is safe to use as a table, schema,
// column or constraint name. Every identifier is checked at the validation
// stage so dialect clients never interpolate unvetted names into DDL.
func IsValidIdentifier(s string) bool {
	return IdentifierRegex.MatchString(s)
}
