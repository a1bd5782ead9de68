package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresAddPrimaryKeySQL(t *testing.T) {
	sql := postgresAddPrimaryKeySQL("public", "orders", "pk_orders", []string{"id", "region"})
	assert.Equal(t, `ALTER TABLE "public"."orders" ADD CONSTRAINT "pk_orders" PRIMARY KEY ("id", "region")`, sql)
}

func TestPostgresAddPrimaryKeySQLDefaultName(t *testing.T) {
	sql := postgresAddPrimaryKeySQL("public", "orders", "", []string{"id"})
	assert.Equal(t, `ALTER TABLE "public"."orders" ADD CONSTRAINT "pk_orders" PRIMARY KEY ("id")`, sql)
}

func TestPostgresDropPrimaryKeySQL(t *testing.T) {
	sql := postgresDropPrimaryKeySQL("sales", "orders", "pk_orders")
	assert.Equal(t, `ALTER TABLE "sales"."orders" DROP CONSTRAINT "pk_orders"`, sql)
}

func TestPgQuoteEscapesQuotes(t *testing.T) {
	assert.Equal(t, `"od""d"`, pgQuote(`od"d`))
}

func TestMySQLAddPrimaryKeySQL(t *testing.T) {
	sql := mysqlAddPrimaryKeySQL("", "orders", []string{"id"})
	assert.Equal(t, "ALTER TABLE `orders` ADD PRIMARY KEY (`id`)", sql)

	sql = mysqlAddPrimaryKeySQL("shop", "orders", []string{"id", "region"})
	assert.Equal(t, "ALTER TABLE `shop`.`orders` ADD PRIMARY KEY (`id`, `region`)", sql)
}

func TestMySQLDropPrimaryKeySQL(t *testing.T) {
	sql := mysqlDropPrimaryKeySQL("shop", "orders")
	assert.Equal(t, "ALTER TABLE `shop`.`orders` DROP PRIMARY KEY", sql)
}

func TestMSSQLAddPrimaryKeySQL(t *testing.T) {
	sql := mssqlAddPrimaryKeySQL("dbo", "orders", "pk_orders", []string{"id"})
	assert.Equal(t, `ALTER TABLE [dbo].[orders] ADD CONSTRAINT [pk_orders] PRIMARY KEY ([id])`, sql)
}

func TestMSSQLDropPrimaryKeySQL(t *testing.T) {
	sql := mssqlDropPrimaryKeySQL("dbo", "orders", "pk_orders")
	assert.Equal(t, `ALTER TABLE [dbo].[orders] DROP CONSTRAINT [pk_orders]`, sql)
}

func TestMSQuoteEscapesBrackets(t *testing.T) {
	assert.Equal(t, `[od]]d]`, msQuote(`od]d`))
}
