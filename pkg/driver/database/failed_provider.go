package database

import (
	"context"
	"database/sql"
	"time"

	sqldb "github.com/femi9outfit/storefront/pkg/database"
)

// DatabaseFailedJobProvider implements queue.FailedJobProvider using a SQL database
type DatabaseFailedJobProvider struct {
	db     *sql.DB
	table  string
	driver string
}

// NewDatabaseFailedJobProvider creates a new provider
func NewDatabaseFailedJobProvider(db *sql.DB, tableName string, driver string) *DatabaseFailedJobProvider {
	if tableName == "" {
		tableName = "failed_jobs"
	}
	return &DatabaseFailedJobProvider{
		db:     db,
		table:  tableName,
		driver: driver,
	}
}

// Log records a failed job to the database
func (p *DatabaseFailedJobProvider) Log(ctx context.Context, connection string, queue string, payload []byte, exception string) error {
	query := `INSERT INTO ` + p.table + ` (connection, queue, payload, exception, failed_at) VALUES (?, ?, ?, ?, ?)`
	if sqldb.IsPostgres(p.driver) {
		query = sqldb.Rebind(query)
	}

	_, err := p.db.ExecContext(ctx, query, connection, queue, payload, exception, time.Now())
	return err
}
