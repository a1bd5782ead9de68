package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/mjczone/dappermatic-sub001/internal/model"
)

const mssqlDefaultSchema = "dbo"

type MSSQLClient struct {
	db *sql.DB
}

func NewMSSQLClient() *MSSQLClient {
	return &MSSQLClient{}
}

func (s *MSSQLClient) Connect(ctx context.Context, dsn string) error {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return err
	}
	s.db = db
	return db.PingContext(ctx)
}

func (s *MSSQLClient) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *MSSQLClient) SchemaExists(ctx context.Context, schema string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM information_schema.schemata WHERE schema_name = @p1`,
		schema).Scan(&count)
	return count > 0, err
}

func (s *MSSQLClient) TableExists(ctx context.Context, schema, table string) (bool, error) {
	if schema == "" {
		schema = mssqlDefaultSchema
	}
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = @p1 AND table_name = @p2`,
		schema, table).Scan(&count)
	return count > 0, err
}

func (s *MSSQLClient) GetPrimaryKey(ctx context.Context, schema, table string) (*model.PrimaryKeyConstraint, error) {
	if schema == "" {
		schema = mssqlDefaultSchema
	}

	query := `
		SELECT tc.constraint_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema = kcu.table_schema
		 AND tc.table_name = kcu.table_name
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema = @p1
		  AND tc.table_name = @p2
		ORDER BY kcu.ordinal_position
	`

	rows, err := s.db.QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pk *model.PrimaryKeyConstraint
	for rows.Next() {
		var name, column string
		if err := rows.Scan(&name, &column); err != nil {
			return nil, err
		}
		if pk == nil {
			pk = &model.PrimaryKeyConstraint{
				ConstraintName: name,
				TableName:      table,
				SchemaName:     schema,
			}
		}
		pk.ColumnNames = append(pk.ColumnNames, column)
	}
	return pk, rows.Err()
}

func (s *MSSQLClient) CreatePrimaryKeyIfNotExists(ctx context.Context, pk *model.PrimaryKeyConstraint) (bool, error) {
	existing, err := s.GetPrimaryKey(ctx, pk.SchemaName, pk.TableName)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	schema := pk.SchemaName
	if schema == "" {
		schema = mssqlDefaultSchema
	}
	if _, err := s.db.ExecContext(ctx, mssqlAddPrimaryKeySQL(schema, pk.TableName, pk.ConstraintName, pk.ColumnNames)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MSSQLClient) DropPrimaryKeyIfExists(ctx context.Context, schema, table string) (bool, error) {
	existing, err := s.GetPrimaryKey(ctx, schema, table)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if schema == "" {
		schema = mssqlDefaultSchema
	}
	if _, err := s.db.ExecContext(ctx, mssqlDropPrimaryKeySQL(schema, table, existing.ConstraintName)); err != nil {
		return false, err
	}
	return true, nil
}

func mssqlAddPrimaryKeySQL(schema, table, name string, columns []string) string {
	if name == "" {
		name = "pk_" + table
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = msQuote(c)
	}
	return fmt.Sprintf(`ALTER TABLE %s.%s ADD CONSTRAINT %s PRIMARY KEY (%s)`,
		msQuote(schema), msQuote(table), msQuote(name), strings.Join(quoted, ", "))
}

func mssqlDropPrimaryKeySQL(schema, table, name string) string {
	return fmt.Sprintf(`ALTER TABLE %s.%s DROP CONSTRAINT %s`,
		msQuote(schema), msQuote(table), msQuote(name))
}

func msQuote(ident string) string {
	return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
}
