package model

// ToPrimaryKeyDTO maps the internal representation to its transfer shape.
// Pure and total: it never fails for a well-formed internal object.
func ToPrimaryKeyDTO(pk *PrimaryKeyConstraint) PrimaryKeyConstraintDTO {
	dto := PrimaryKeyConstraintDTO{
		ConstraintName: pk.ConstraintName,
		TableName:      pk.TableName,
		SchemaName:     pk.SchemaName,
		ColumnNames:    make([]string, len(pk.ColumnNames)),
	}
	copy(dto.ColumnNames, pk.ColumnNames)
	return dto
}

// FromPrimaryKeyDTO maps a transfer shape back to the internal
// representation. Malformed input is rejected by the validation stage before
// it reaches the orchestrator, not here.
func FromPrimaryKeyDTO(dto PrimaryKeyConstraintDTO) *PrimaryKeyConstraint {
	pk := &PrimaryKeyConstraint{
		ConstraintName: dto.ConstraintName,
		TableName:      dto.TableName,
		SchemaName:     dto.SchemaName,
		ColumnNames:    make([]string, len(dto.ColumnNames)),
	}
	copy(pk.ColumnNames, dto.ColumnNames)
	return pk
}
