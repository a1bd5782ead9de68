package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/mjczone/dappermatic-sub001/internal/model"
)

const postgresDefaultSchema = "public"

type PostgresClient struct {
	db *sql.DB
}

func NewPostgresClient() *PostgresClient {
	return &PostgresClient{}
}

func (p *PostgresClient) Connect(ctx context.Context, dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	p.db = db
	return db.PingContext(ctx)
}

func (p *PostgresClient) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *PostgresClient) SchemaExists(ctx context.Context, schema string) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.schemata WHERE schema_name = $1)`,
		schema).Scan(&exists)
	return exists, err
}

func (p *PostgresClient) TableExists(ctx context.Context, schema, table string) (bool, error) {
	if schema == "" {
		schema = postgresDefaultSchema
	}
	var exists bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = $1 AND table_name = $2)`,
		schema, table).Scan(&exists)
	return exists, err
}

func (p *PostgresClient) GetPrimaryKey(ctx context.Context, schema, table string) (*model.PrimaryKeyConstraint, error) {
	if schema == "" {
		schema = postgresDefaultSchema
	}

	query := `
		SELECT tc.constraint_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema = kcu.table_schema
		 AND tc.table_name = kcu.table_name
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema = $1
		  AND tc.table_name = $2
		ORDER BY kcu.ordinal_position;
	`

	rows, err := p.db.QueryContext(ctx, query, schema, table)
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

func (p *PostgresClient) CreatePrimaryKeyIfNotExists(ctx context.Context, pk *model.PrimaryKeyConstraint) (bool, error) {
	existing, err := p.GetPrimaryKey(ctx, pk.SchemaName, pk.TableName)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	schema := pk.SchemaName
	if schema == "" {
		schema = postgresDefaultSchema
	}
	if _, err := p.db.ExecContext(ctx, postgresAddPrimaryKeySQL(schema, pk.TableName, pk.ConstraintName, pk.ColumnNames)); err != nil {
		return false, err
	}
	return true, nil
}

func (p *PostgresClient) DropPrimaryKeyIfExists(ctx context.Context, schema, table string) (bool, error) {
	existing, err := p.GetPrimaryKey(ctx, schema, table)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if schema == "" {
		schema = postgresDefaultSchema
	}
	if _, err := p.db.ExecContext(ctx, postgresDropPrimaryKeySQL(schema, table, existing.ConstraintName)); err != nil {
		return false, err
	}
	return true, nil
}

func postgresAddPrimaryKeySQL(schema, table, name string, columns []string) string {
	if name == "" {
		name = "pk_" + table
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pgQuote(c)
	}
	return fmt.Sprintf(`ALTER TABLE %s.%s ADD CONSTRAINT %s PRIMARY KEY (%s)`,
		pgQuote(schema), pgQuote(table), pgQuote(name), strings.Join(quoted, ", "))
}

func postgresDropPrimaryKeySQL(schema, table, name string) string {
	return fmt.Sprintf(`ALTER TABLE %s.%s DROP CONSTRAINT %s`,
		pgQuote(schema), pgQuote(table), pgQuote(name))
}

func pgQuote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
