package model

import "strings"

// PrimaryKeyConstraint is the internal representation of a table's primary
// key. ConstraintName may be empty on input: some backends assign their own
// name (MySQL always calls it PRIMARY). Instances returned from a read are
// never modified afterwards.
type PrimaryKeyConstraint struct {
	ConstraintName string
	TableName      string
	SchemaName     string
	ColumnNames    []string
}

// Identity returns a short human-readable tag for log and audit messages,
// preferring the constraint name and falling back to the column list.
func (pk *PrimaryKeyConstraint) Identity() string {
	if pk.ConstraintName != "" {
		return "'" + pk.ConstraintName + "'"
	}
	return "(" + strings.Join(pk.ColumnNames, ", ") + ")"
}

// Caller identifies who is performing an operation. It is forwarded to the
// permission checker and the audit recorder and is never persisted here.
type Caller struct {
	Subject string
	Token   string
}
