// Package schemaops implements the orchestration protocol shared by every
// schema object type: permission check, schema name normalization, scoped
// connection provisioning, precondition verification, the idempotent
// mutation, a post-condition re-read, and an exactly-once audit event.
//
// The protocol is generic over an ObjectOps capability set so that primary
// keys, foreign keys, indexes and columns all reuse the same
// verify -> mutate -> reread -> audit sequence. The primary key variant is
// instantiated in primarykey.go.
package schemaops

import (
	"context"
	"fmt"
	"strings"

	"github.com/mjczone/dappermatic-sub001/helper"
	"github.com/mjczone/dappermatic-sub001/internal/model"
	"github.com/mjczone/dappermatic-sub001/internal/service"
)

// PermissionChecker gates every operation before any connection is opened.
type PermissionChecker interface {
	Check(ctx context.Context, caller model.Caller) error
}

// AuditRecorder receives exactly one event per logical operation that passed
// its preconditions. Fire-and-forget is acceptable.
type AuditRecorder interface {
	Record(ctx context.Context, caller model.Caller, success bool, message string)
}

// ConnectionProvider resolves a datasource identifier to a connection that
// is exclusively owned by the calling operation.
type ConnectionProvider interface {
	Acquire(ctx context.Context, datasourceID string) (service.Connection, error)
}

// ObjectOps is the per-object-type capability set the engine sequences.
// Schema names passed to Read, CreateIfAbsent and DropIfPresent are already
// normalized; "" means the backend default.
type ObjectOps[T any] struct {
	// Kind names the object type in messages, e.g. "Primary key constraint".
	Kind string

	// Locate extracts the schema and table a definition targets.
	Locate func(def *T) (schemaName, tableName string)

	// Validate rejects malformed definitions before any I/O happens.
	Validate func(def *T) error

	// Read returns the object on the table, or nil when absent.
	Read func(ctx context.Context, conn service.Connection, schemaName, tableName string) (*T, error)

	// CreateIfAbsent creates the object unless one already exists. True
	// means a new object was created, false that an equivalent state was
	// already in place.
	CreateIfAbsent func(ctx context.Context, conn service.Connection, schemaName, tableName string, def *T) (bool, error)

	// DropIfPresent removes the object if present.
	DropIfPresent func(ctx context.Context, conn service.Connection, schemaName, tableName string) (bool, error)

	// Describe renders an object's identity for diagnostics and audit.
	Describe func(def *T) string
}

// Engine runs the mutation protocol for one object type.
type Engine[T any] struct {
	ops         ObjectOps[T]
	connections ConnectionProvider
	permissions PermissionChecker
	auditor     AuditRecorder
}

func NewEngine[T any](ops ObjectOps[T], connections ConnectionProvider, permissions PermissionChecker, auditor AuditRecorder) *Engine[T] {
	return &Engine[T]{
		ops:         ops,
		connections: connections,
		permissions: permissions,
		auditor:     auditor,
	}
}

// Get reads the object from the table. Lookup failures surface directly to
// the caller; only a successful read is audited.
func (e *Engine[T]) Get(ctx context.Context, caller model.Caller, datasourceID, tableName, schemaName string) (*T, error) {
	if err := e.permissions.Check(ctx, caller); err != nil {
		return nil, err
	}
	schemaName = NormalizeSchemaName(schemaName)
	if err := validateLocator(datasourceID, tableName, schemaName); err != nil {
		return nil, err
	}

	conn, err := e.connections.Acquire(ctx, datasourceID)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := verifyPreconditions(ctx, conn, schemaName, tableName); err != nil {
		return nil, err
	}

	kind := strings.ToLower(e.ops.Kind)
	obj, err := e.ops.Read(ctx, conn, schemaName, tableName)
	if err != nil {
		return nil, &StoreError{
			Message: fmt.Sprintf("failed to read %s on table '%s'", kind, tableName),
			Err:     err,
		}
	}
	if obj == nil {
		return nil, objectNotFound(e.ops.Kind, tableName)
	}

	e.auditor.Record(ctx, caller, true,
		fmt.Sprintf("read %s %s on table '%s'", kind, e.ops.Describe(obj), tableName))
	return obj, nil
}

// Create idempotently creates the object, then re-reads it so the caller
// gets the authoritative state: generated names, column ordering or
// backend-assigned defaults may differ from what was requested. A mutation
// the store accepted but the re-read cannot confirm is a
// PostconditionError, not a caller error.
func (e *Engine[T]) Create(ctx context.Context, caller model.Caller, datasourceID string, def *T) (*T, error) {
	if err := e.permissions.Check(ctx, caller); err != nil {
		return nil, err
	}
	if def == nil {
		return nil, &ValidationError{Message: "a definition is required"}
	}
	if err := e.ops.Validate(def); err != nil {
		return nil, err
	}
	schemaName, tableName := e.ops.Locate(def)
	schemaName = NormalizeSchemaName(schemaName)
	if err := validateLocator(datasourceID, tableName, schemaName); err != nil {
		return nil, err
	}

	conn, err := e.connections.Acquire(ctx, datasourceID)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := verifyPreconditions(ctx, conn, schemaName, tableName); err != nil {
		return nil, err
	}

	kind := strings.ToLower(e.ops.Kind)
	created, err := e.ops.CreateIfAbsent(ctx, conn, schemaName, tableName, def)
	if err != nil {
		fail := &MutationFailedError{
			Message: fmt.Sprintf("failed to create %s %s on table '%s'", kind, e.ops.Describe(def), tableName),
			Err:     err,
		}
		e.auditor.Record(ctx, caller, false, fail.Message)
		return nil, fail
	}

	obj, err := e.ops.Read(ctx, conn, schemaName, tableName)
	if err != nil {
		pv := &PostconditionError{
			Message: fmt.Sprintf("failed to retrieve the created %s on table '%s'", kind, tableName),
			Err:     err,
		}
		e.auditor.Record(ctx, caller, false, pv.Message)
		return nil, pv
	}
	if obj == nil {
		pv := &PostconditionError{
			Message: fmt.Sprintf("failed to retrieve the created %s on table '%s'", kind, tableName),
		}
		e.auditor.Record(ctx, caller, false, pv.Message)
		return nil, pv
	}

	verb := "created"
	if !created {
		verb = "found existing"
	}
	e.auditor.Record(ctx, caller, true,
		fmt.Sprintf("%s %s %s on table '%s'", verb, kind, e.ops.Describe(obj), tableName))
	return obj, nil
}

// Drop removes the object. Dropping an object that was never there is
// reported as NotFound rather than silent success, so "expected object
// missing" stays distinguishable from a no-op drop.
func (e *Engine[T]) Drop(ctx context.Context, caller model.Caller, datasourceID, tableName, schemaName string) error {
	if err := e.permissions.Check(ctx, caller); err != nil {
		return err
	}
	schemaName = NormalizeSchemaName(schemaName)
	if err := validateLocator(datasourceID, tableName, schemaName); err != nil {
		return err
	}

	conn, err := e.connections.Acquire(ctx, datasourceID)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := verifyPreconditions(ctx, conn, schemaName, tableName); err != nil {
		return err
	}

	kind := strings.ToLower(e.ops.Kind)
	obj, err := e.ops.Read(ctx, conn, schemaName, tableName)
	if err != nil {
		fail := &StoreError{
			Message: fmt.Sprintf("failed to read %s on table '%s' before drop", kind, tableName),
			Err:     err,
		}
		e.auditor.Record(ctx, caller, false, fail.Message)
		return fail
	}
	if obj == nil {
		nf := objectNotFound(e.ops.Kind, tableName)
		e.auditor.Record(ctx, caller, false, nf.Message)
		return nf
	}

	dropped, err := e.ops.DropIfPresent(ctx, conn, schemaName, tableName)
	if err != nil || !dropped {
		fail := &MutationFailedError{
			Message: fmt.Sprintf("failed to drop %s %s on table '%s'", kind, e.ops.Describe(obj), tableName),
			Err:     err,
		}
		e.auditor.Record(ctx, caller, false, fail.Message)
		return fail
	}

	e.auditor.Record(ctx, caller, true,
		fmt.Sprintf("dropped %s %s on table '%s'", kind, e.ops.Describe(obj), tableName))
	return nil
}

func validateLocator(datasourceID, tableName, schemaName string) error {
	if strings.TrimSpace(datasourceID) == "" {
		return &ValidationError{Message: "datasource id is required"}
	}
	if strings.TrimSpace(tableName) == "" {
		return &ValidationError{Message: "table name is required"}
	}
	if !helper.IsValidIdentifier(tableName) {
		return &ValidationError{Message: fmt.Sprintf("invalid table name '%s'", tableName)}
	}
	if schemaName != "" && !helper.IsValidIdentifier(schemaName) {
		return &ValidationError{Message: fmt.Sprintf("invalid schema name '%s'", schemaName)}
	}
	return nil
}
