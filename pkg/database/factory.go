package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/femi9outfit/storefront/pkg/config"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Factory creates database connections
type Factory struct {
	open func(driverName, dsn string) (*sql.DB, error)
}

// NewFactory creates a new Factory
func NewFactory() *Factory {
	return &Factory{open: sql.Open}
}

// DSN builds the driver name and data source name for cfg.
func DSN(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Connection {
	case "mysql":
		return "mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database), nil
	case "pgsql", "postgres":
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "require"
		}
		return "postgres", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, sslMode), nil
	default:
		return "", "", fmt.Errorf("unsupported database connection: %s", cfg.Connection)
	}
}

// Connect opens and pings a connection based on configuration
func (f *Factory) Connect(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	driverName, dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := f.open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
