package schemaops

import (
	"context"
	"fmt"

	"github.com/mjczone/dappermatic-sub001/internal/service"
)

// verifyPreconditions confirms the ancestors of a schema object exist before
// any mutation is attempted: schema first (only when one was explicitly
// specified), then table. A missing ancestor is reported before a missing
// descendant, so callers can tell "missing table" from "missing constraint".
func verifyPreconditions(ctx context.Context, conn service.Connection, schema, table string) error {
	if schema != "" {
		ok, err := conn.SchemaExists(ctx, schema)
		if err != nil {
			return &StoreError{Message: fmt.Sprintf("failed to check schema '%s'", schema), Err: err}
		}
		if !ok {
			return schemaNotFound(schema)
		}
	}

	ok, err := conn.TableExists(ctx, schema, table)
	if err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to check table '%s'", table), Err: err}
	}
	if !ok {
		return tableNotFound(table, schema)
	}
	return nil
}
