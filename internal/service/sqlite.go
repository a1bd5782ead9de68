package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mjczone/dappermatic-sub001/internal/model"
)

const sqliteDefaultSchema = "main"

// ErrSQLiteTableRebuild is returned for primary key mutations on SQLite,
// which only supports them by recreating the table.
var ErrSQLiteTableRebuild = errors.New("sqlite: changing a primary key requires rebuilding the table")

// SQLiteClient supports lookups and precondition checks; primary key
// mutations fail because SQLite has no ALTER TABLE ADD/DROP CONSTRAINT.
// Schemas map to attached databases, with "main" as the default.
type SQLiteClient struct {
	db *sql.DB
}

func NewSQLiteClient() *SQLiteClient {
	return &SQLiteClient{}
}

func (s *SQLiteClient) Connect(ctx context.Context, dsn string) error {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}
	s.db = db
	return db.PingContext(ctx)
}

func (s *SQLiteClient) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteClient) SchemaExists(ctx context.Context, schema string) (bool, error) {
	if schema == "" {
		return true, nil
	}
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_database_list WHERE name = ?`,
		schema).Scan(&count)
	return count > 0, err
}

func (s *SQLiteClient) TableExists(ctx context.Context, schema, table string) (bool, error) {
	if schema == "" {
		schema = sqliteDefaultSchema
	}
	var count int
	// The schema name was vetted at the validation stage; sqlite_master
	// itself cannot be addressed with a bind parameter.
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s.sqlite_master WHERE type = 'table' AND name = ?`,
		sqQuote(schema))
	err := s.db.QueryRowContext(ctx, query, table).Scan(&count)
	return count > 0, err
}

func (s *SQLiteClient) GetPrimaryKey(ctx context.Context, schema, table string) (*model.PrimaryKeyConstraint, error) {
	if schema == "" {
		schema = sqliteDefaultSchema
	}

	// The optional second argument scopes the pragma to one attached
	// database.
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM pragma_table_info(?, ?) WHERE pk > 0 ORDER BY pk`,
		table, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pk *model.PrimaryKeyConstraint
	for rows.Next() {
		var column string
		if err := rows.Scan(&column); err != nil {
			return nil, err
		}
		if pk == nil {
			// SQLite primary keys carry no constraint name.
			pk = &model.PrimaryKeyConstraint{
				TableName:  table,
				SchemaName: schema,
			}
		}
		pk.ColumnNames = append(pk.ColumnNames, column)
	}
	return pk, rows.Err()
}

func (s *SQLiteClient) CreatePrimaryKeyIfNotExists(ctx context.Context, pk *model.PrimaryKeyConstraint) (bool, error) {
	existing, err := s.GetPrimaryKey(ctx, pk.SchemaName, pk.TableName)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	return false, ErrSQLiteTableRebuild
}

func (s *SQLiteClient) DropPrimaryKeyIfExists(ctx context.Context, schema, table string) (bool, error) {
	existing, err := s.GetPrimaryKey(ctx, schema, table)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return false, ErrSQLiteTableRebuild
}

func sqQuote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
