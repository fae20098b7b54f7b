package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/femi9outfit/storefront/pkg/config"
	sqldb "github.com/femi9outfit/storefront/pkg/database"
	"github.com/femi9outfit/storefront/pkg/queue"
)

// DatabaseDriver implements queue.Driver for SQL databases
type DatabaseDriver struct {
	db           *sql.DB
	table        string
	driver       string
	pollInterval time.Duration
}

// NewDatabaseDriver creates a new database driver
func NewDatabaseDriver(cfg config.DatabaseConfig, db *sql.DB) *DatabaseDriver {
	tableName := cfg.Table
	if tableName == "" {
		tableName = "jobs"
	}
	return &DatabaseDriver{
		db:           db,
		table:        tableName,
		driver:       cfg.Connection,
		pollInterval: time.Second,
	}
}

// Pop polls for a job until one is available or ctx is done
func (d *DatabaseDriver) Pop(ctx context.Context, queueName string) (*queue.Job, error) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		job, err := d.popJob(ctx, queueName)
		if err == nil {
			return job, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (d *DatabaseDriver) popJob(ctx context.Context, queueName string) (*queue.Job, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := d.rebind(fmt.Sprintf(`SELECT id, payload FROM %s WHERE queue = ? AND available_at <= ? ORDER BY id ASC LIMIT 1 FOR UPDATE%s`,
		d.table, d.skipLocked()))

	var id int64
	var payload []byte
	if err := tx.QueryRowContext(ctx, query, queueName, time.Now().Unix()).Scan(&id, &payload); err != nil {
		return nil, err
	}

	// Jobs are removed on pop; a crashed worker loses the job.
	if _, err := tx.ExecContext(ctx, d.rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", d.table)), id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &queue.Job{
		ID:   strconv.FormatInt(id, 10),
		Body: payload,
	}, nil
}

// Push adds a job to the database
func (d *DatabaseDriver) Push(ctx context.Context, queueName string, body []byte) error {
	query := d.rebind(fmt.Sprintf(`INSERT INTO %s (queue, payload, attempts, available_at, created_at) VALUES (?, ?, 0, ?, ?)`, d.table))

	now := time.Now().Unix()
	_, err := d.db.ExecContext(ctx, query, queueName, body, now, now)
	return err
}

// Ack is a no-op: jobs are deleted when popped.
func (d *DatabaseDriver) Ack(ctx context.Context, job *queue.Job) error {
	return nil
}

func (d *DatabaseDriver) isPostgres() bool {
	return sqldb.IsPostgres(d.driver)
}

func (d *DatabaseDriver) skipLocked() string {
	if d.isPostgres() {
		return " SKIP LOCKED"
	}
	return ""
}

func (d *DatabaseDriver) rebind(query string) string {
	if !d.isPostgres() {
		return query
	}
	return sqldb.Rebind(query)
}
