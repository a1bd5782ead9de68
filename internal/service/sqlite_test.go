package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjczone/dappermatic-sub001/internal/model"
)

func pkDef(table string, cols ...string) *model.PrimaryKeyConstraint {
	return &model.PrimaryKeyConstraint{TableName: table, ColumnNames: cols}
}

func newTestSQLite(t *testing.T) *SQLiteClient {
	t.Helper()
	c := NewSQLiteClient()
	require.NoError(t, c.Connect(context.Background(), ":memory:"))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteTableExists(t *testing.T) {
	c := newTestSQLite(t)
	ctx := context.Background()

	_, err := c.db.ExecContext(ctx, `CREATE TABLE orders (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)

	exists, err := c.TableExists(ctx, "", "orders")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.TableExists(ctx, "", "missing")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteGetPrimaryKey(t *testing.T) {
	c := newTestSQLite(t)
	ctx := context.Background()

	_, err := c.db.ExecContext(ctx, `CREATE TABLE orders (region TEXT, id INTEGER, amount REAL, PRIMARY KEY (id, region))`)
	require.NoError(t, err)

	pk, err := c.GetPrimaryKey(ctx, "", "orders")
	require.NoError(t, err)
	require.NotNil(t, pk)
	assert.Equal(t, "orders", pk.TableName)
	assert.Equal(t, "main", pk.SchemaName)
	assert.Equal(t, []string{"id", "region"}, pk.ColumnNames)
}

func TestSQLiteAttachedSchemaScoping(t *testing.T) {
	c := newTestSQLite(t)
	ctx := context.Background()

	_, err := c.db.ExecContext(ctx, `ATTACH DATABASE ':memory:' AS aux`)
	require.NoError(t, err)
	_, err = c.db.ExecContext(ctx, `CREATE TABLE aux.orders (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)

	exists, err := c.SchemaExists(ctx, "aux")
	assert.NoError(t, err)
	assert.True(t, exists)

	// The table lives only in the attached database; the main schema must
	// not see it.
	exists, err = c.TableExists(ctx, "aux", "orders")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.TableExists(ctx, "", "orders")
	assert.NoError(t, err)
	assert.False(t, exists)

	pk, err := c.GetPrimaryKey(ctx, "aux", "orders")
	require.NoError(t, err)
	require.NotNil(t, pk)
	assert.Equal(t, "aux", pk.SchemaName)
	assert.Equal(t, []string{"id"}, pk.ColumnNames)

	pk, err = c.GetPrimaryKey(ctx, "", "orders")
	assert.NoError(t, err)
	assert.Nil(t, pk)
}

func TestSQLiteGetPrimaryKeyAbsent(t *testing.T) {
	c := newTestSQLite(t)
	ctx := context.Background()

	_, err := c.db.ExecContext(ctx, `CREATE TABLE plain (v TEXT)`)
	require.NoError(t, err)

	pk, err := c.GetPrimaryKey(ctx, "", "plain")
	assert.NoError(t, err)
	assert.Nil(t, pk)
}

func TestSQLiteCreatePrimaryKey(t *testing.T) {
	c := newTestSQLite(t)
	ctx := context.Background()

	_, err := c.db.ExecContext(ctx, `CREATE TABLE keyed (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = c.db.ExecContext(ctx, `CREATE TABLE plain (v TEXT)`)
	require.NoError(t, err)

	// Already keyed: idempotent no-op.
	created, err := c.CreatePrimaryKeyIfNotExists(ctx, pkDef("keyed", "id"))
	assert.NoError(t, err)
	assert.False(t, created)

	// No key and no rebuild support: explicit failure.
	_, err = c.CreatePrimaryKeyIfNotExists(ctx, pkDef("plain", "v"))
	assert.ErrorIs(t, err, ErrSQLiteTableRebuild)
}

func TestSQLiteDropPrimaryKey(t *testing.T) {
	c := newTestSQLite(t)
	ctx := context.Background()

	_, err := c.db.ExecContext(ctx, `CREATE TABLE keyed (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = c.db.ExecContext(ctx, `CREATE TABLE plain (v TEXT)`)
	require.NoError(t, err)

	dropped, err := c.DropPrimaryKeyIfExists(ctx, "", "plain")
	assert.NoError(t, err)
	assert.False(t, dropped)

	_, err = c.DropPrimaryKeyIfExists(ctx, "", "keyed")
	assert.ErrorIs(t, err, ErrSQLiteTableRebuild)
}
