package database

import (
	"testing"

	"github.com/femi9outfit/storefront/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", Rebind("SELECT * FROM t WHERE a = ? AND b = ?"))
	assert.Equal(t, "SELECT 1", Rebind("SELECT 1"))
	assert.Equal(t, "a = ?", RebindFor("mysql", "a = ?"))
	assert.Equal(t, "a = $1", RebindFor("pgsql", "a = ?"))
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"key"`, QuoteIdent("postgres", "key"))
	assert.Equal(t, "`key`", QuoteIdent("mysql", "key"))
}

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Connection: "pgsql",
		Host:       "db.example.com",
		Port:       "5432",
		Database:   "shop",
		Username:   "shop",
		Password:   "pw",
	}

	driver, dsn, err := DSN(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", driver)
	assert.Equal(t, "host=db.example.com port=5432 user=shop password=pw dbname=shop sslmode=require", dsn)

	cfg.Connection = "mysql"
	cfg.Port = "3306"
	driver, dsn, err = DSN(cfg)
	require.NoError(t, err)
	assert.Equal(t, "mysql", driver)
	assert.Equal(t, "shop:pw@tcp(db.example.com:3306)/shop?parseTime=true&loc=Local", dsn)

	cfg.Connection = "sqlite"
	_, _, err = DSN(cfg)
	assert.EqualError(t, err, "unsupported database connection: sqlite")
}
