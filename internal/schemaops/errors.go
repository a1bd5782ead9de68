package schemaops

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed request. It is raised before any I/O,
// so a request failing validation never provisions a connection.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PermissionDeniedError is terminal before any connection is opened; denied
// requests are not audited by this layer.
type PermissionDeniedError struct {
	Subject string
}

func (e *PermissionDeniedError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("caller '%s' is not permitted to manage schema objects", e.Subject)
	}
	return "caller is not permitted to manage schema objects"
}

// DatasourceError reports that a datasource identifier could not be resolved
// to a live connection.
type DatasourceError struct {
	DatasourceID string
	Err          error
}

func (e *DatasourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot resolve datasource '%s': %v", e.DatasourceID, e.Err)
	}
	return fmt.Sprintf("cannot resolve datasource '%s'", e.DatasourceID)
}

func (e *DatasourceError) Unwrap() error { return e.Err }

// NotFoundError reports an absent schema, table, or schema object. A missing
// ancestor is always reported before a missing descendant.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func schemaNotFound(schema string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Schema '%s' does not exist", schema)}
}

func tableNotFound(table, schema string) *NotFoundError {
	if schema != "" {
		return &NotFoundError{Message: fmt.Sprintf("Table '%s' does not exist in schema '%s'", table, schema)}
	}
	return &NotFoundError{Message: fmt.Sprintf("Table '%s' does not exist", table)}
}

func objectNotFound(kind, table string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("%s not found on table '%s'", kind, table)}
}

// MutationFailedError reports that the underlying create or drop call failed.
// Message always carries enough context (intended name or column list) for
// diagnosis; the store's own error is kept on the chain, never surfaced as
// the category text.
type MutationFailedError struct {
	Message string
	Err     error
}

func (e *MutationFailedError) Error() string { return e.Message }

func (e *MutationFailedError) Unwrap() error { return e.Err }

// StoreError reports that a store read or existence check failed for an
// unspecified backend reason. Error carries only the stable message; the
// driver's own text stays on the chain for the server log.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string { return e.Message }

func (e *StoreError) Unwrap() error { return e.Err }

// PostconditionError reports that the store accepted a mutation but a
// subsequent read could not confirm it. This signals a store or driver
// inconsistency, not a caller error.
type PostconditionError struct {
	Message string
	Err     error
}

func (e *PostconditionError) Error() string { return e.Message }

func (e *PostconditionError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsPermissionDenied(err error) bool {
	var pe *PermissionDeniedError
	return errors.As(err, &pe)
}

func IsDatasource(err error) bool {
	var de *DatasourceError
	return errors.As(err, &de)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsMutationFailed(err error) bool {
	var me *MutationFailedError
	return errors.As(err, &me)
}

func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func IsPostcondition(err error) bool {
	var pe *PostconditionError
	return errors.As(err, &pe)
}
