package model

// PrimaryKeyConstraintDTO is the external transfer shape of a primary key
// constraint.
type PrimaryKeyConstraintDTO struct {
	ConstraintName string   `json:"constraint_name,omitempty"`
	TableName      string   `json:"table_name"`
	SchemaName     string   `json:"schema_name,omitempty"`
	ColumnNames    []string `json:"column_names"`
}

// CreatePrimaryKeyRequest is the request body for creating a primary key.
// TableName and SchemaName come from the route, so the body only carries the
// optional name and the column list.
type CreatePrimaryKeyRequest struct {
	ConstraintName string   `json:"constraint_name,omitempty"`
	ColumnNames    []string `json:"column_names"`
}
