package schemaops

import "strings"

// NormalizeSchemaName canonicalizes an optional schema name. Empty or
// whitespace-only input becomes "" (the "unspecified" marker, letting each
// backend substitute its default schema); anything else passes through
// trimmed.
func NormalizeSchemaName(schema string) string {
	return strings.TrimSpace(schema)
}
