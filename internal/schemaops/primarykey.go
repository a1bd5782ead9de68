package schemaops

import (
	"context"
	"fmt"

	"github.com/mjczone/dappermatic-sub001/helper"
	"github.com/mjczone/dappermatic-sub001/internal/model"
	"github.com/mjczone/dappermatic-sub001/internal/service"
)

// PrimaryKeys is the primary key instantiation of the mutation protocol.
type PrimaryKeys struct {
	engine *Engine[model.PrimaryKeyConstraint]
}

func NewPrimaryKeys(connections ConnectionProvider, permissions PermissionChecker, auditor AuditRecorder) *PrimaryKeys {
	ops := ObjectOps[model.PrimaryKeyConstraint]{
		Kind: "Primary key constraint",
		Locate: func(def *model.PrimaryKeyConstraint) (string, string) {
			return def.SchemaName, def.TableName
		},
		Validate: validatePrimaryKeyDefinition,
		Read: func(ctx context.Context, conn service.Connection, schemaName, tableName string) (*model.PrimaryKeyConstraint, error) {
			return conn.GetPrimaryKey(ctx, schemaName, tableName)
		},
		CreateIfAbsent: func(ctx context.Context, conn service.Connection, schemaName, tableName string, def *model.PrimaryKeyConstraint) (bool, error) {
			// The caller's definition stays untouched; the dialect call
			// gets a copy carrying the normalized location.
			req := &model.PrimaryKeyConstraint{
				ConstraintName: def.ConstraintName,
				TableName:      tableName,
				SchemaName:     schemaName,
				ColumnNames:    append([]string(nil), def.ColumnNames...),
			}
			return conn.CreatePrimaryKeyIfNotExists(ctx, req)
		},
		DropIfPresent: func(ctx context.Context, conn service.Connection, schemaName, tableName string) (bool, error) {
			return conn.DropPrimaryKeyIfExists(ctx, schemaName, tableName)
		},
		Describe: func(pk *model.PrimaryKeyConstraint) string {
			return pk.Identity()
		},
	}
	return &PrimaryKeys{engine: NewEngine(ops, connections, permissions, auditor)}
}

// Get returns the table's primary key constraint.
func (s *PrimaryKeys) Get(ctx context.Context, caller model.Caller, datasourceID, tableName, schemaName string) (*model.PrimaryKeyConstraint, error) {
	return s.engine.Get(ctx, caller, datasourceID, tableName, schemaName)
}

// Create idempotently adds a primary key and returns the authoritative
// re-read state.
func (s *PrimaryKeys) Create(ctx context.Context, caller model.Caller, datasourceID string, def *model.PrimaryKeyConstraint) (*model.PrimaryKeyConstraint, error) {
	return s.engine.Create(ctx, caller, datasourceID, def)
}

// Drop removes the table's primary key; a table without one is NotFound.
func (s *PrimaryKeys) Drop(ctx context.Context, caller model.Caller, datasourceID, tableName, schemaName string) error {
	return s.engine.Drop(ctx, caller, datasourceID, tableName, schemaName)
}

func validatePrimaryKeyDefinition(def *model.PrimaryKeyConstraint) error {
	if len(def.ColumnNames) == 0 {
		return &ValidationError{Message: "at least one column name is required"}
	}
	for _, c := range def.ColumnNames {
		if !helper.IsValidIdentifier(c) {
			return &ValidationError{Message: fmt.Sprintf("invalid column name '%s'", c)}
		}
	}
	if def.ConstraintName != "" && !helper.IsValidIdentifier(def.ConstraintName) {
		return &ValidationError{Message: fmt.Sprintf("invalid constraint name '%s'", def.ConstraintName)}
	}
	return nil
}
