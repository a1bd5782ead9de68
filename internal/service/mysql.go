package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/mjczone/dappermatic-sub001/internal/model"
)

// MySQLClient treats schemas as MySQL databases; an unspecified schema
// resolves to DATABASE(), i.e. the database named in the DSN. MySQL names
// every primary key PRIMARY, so a requested constraint name is accepted but
// not preserved.
type MySQLClient struct {
	db *sql.DB
}

func NewMySQLClient() *MySQLClient {
	return &MySQLClient{}
}

func (m *MySQLClient) Connect(ctx context.Context, dsn string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	m.db = db
	return db.PingContext(ctx)
}

func (m *MySQLClient) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *MySQLClient) SchemaExists(ctx context.Context, schema string) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.schemata WHERE schema_name = ?)`,
		schema).Scan(&exists)
	return exists, err
}

func (m *MySQLClient) TableExists(ctx context.Context, schema, table string) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = COALESCE(NULLIF(?, ''), DATABASE()) AND table_name = ?
		)`,
		schema, table).Scan(&exists)
	return exists, err
}

func (m *MySQLClient) GetPrimaryKey(ctx context.Context, schema, table string) (*model.PrimaryKeyConstraint, error) {
	query := `
		SELECT kcu.constraint_name, kcu.column_name
		FROM information_schema.key_column_usage kcu
		WHERE kcu.constraint_name = 'PRIMARY'
		  AND kcu.table_schema = COALESCE(NULLIF(?, ''), DATABASE())
		  AND kcu.table_name = ?
		ORDER BY kcu.ordinal_position
	`

	rows, err := m.db.QueryContext(ctx, query, schema, table)
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

func (m *MySQLClient) CreatePrimaryKeyIfNotExists(ctx context.Context, pk *model.PrimaryKeyConstraint) (bool, error) {
	existing, err := m.GetPrimaryKey(ctx, pk.SchemaName, pk.TableName)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	if _, err := m.db.ExecContext(ctx, mysqlAddPrimaryKeySQL(pk.SchemaName, pk.TableName, pk.ColumnNames)); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MySQLClient) DropPrimaryKeyIfExists(ctx context.Context, schema, table string) (bool, error) {
	existing, err := m.GetPrimaryKey(ctx, schema, table)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if _, err := m.db.ExecContext(ctx, mysqlDropPrimaryKeySQL(schema, table)); err != nil {
		return false, err
	}
	return true, nil
}

func mysqlAddPrimaryKeySQL(schema, table string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = myQuote(c)
	}
	return fmt.Sprintf(`ALTER TABLE %s ADD PRIMARY KEY (%s)`,
		myQualify(schema, table), strings.Join(quoted, ", "))
}

func mysqlDropPrimaryKeySQL(schema, table string) string {
	return fmt.Sprintf(`ALTER TABLE %s DROP PRIMARY KEY`, myQualify(schema, table))
}

func myQualify(schema, table string) string {
	if schema == "" {
		return myQuote(table)
	}
	return myQuote(schema) + "." + myQuote(table)
}

func myQuote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}
