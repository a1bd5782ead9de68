package service

import (
	"context"

	"github.com/mjczone/dappermatic-sub001/internal/model"
)

// Connection is the per-dialect capability set the orchestrator runs against.
// A Connection is exclusively owned by one operation: acquired at the start,
// closed on every exit path.
//
// The schema argument is the normalized schema name; "" means "unspecified"
// and each dialect substitutes its own default (public, DATABASE(), dbo, ...).
type Connection interface {
	// Connect opens the underlying database handle and verifies it is
	// reachable.
	Connect(ctx context.Context, dsn string) error

	// SchemaExists reports whether the named schema exists.
	SchemaExists(ctx context.Context, schema string) (bool, error)

	// TableExists reports whether the named table exists in the schema.
	TableExists(ctx context.Context, schema, table string) (bool, error)

	// GetPrimaryKey returns the table's primary key, or nil when the table
	// has none.
	GetPrimaryKey(ctx context.Context, schema, table string) (*model.PrimaryKeyConstraint, error)

	// CreatePrimaryKeyIfNotExists adds the primary key unless one already
	// exists. It returns true when a new constraint was created and false
	// when an equivalent state was already in place.
	CreatePrimaryKeyIfNotExists(ctx context.Context, pk *model.PrimaryKeyConstraint) (bool, error)

	// DropPrimaryKeyIfExists removes the table's primary key if present.
	// It returns true when a constraint was dropped and false when there
	// was nothing to drop.
	DropPrimaryKeyIfExists(ctx context.Context, schema, table string) (bool, error)

	// Close releases the underlying handle.
	Close() error
}
