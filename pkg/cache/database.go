package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqldb "github.com/femi9outfit/storefront/pkg/database"
)

type DatabaseStore struct {
	db     *sql.DB
	table  string
	driver string
	now    func() time.Time
}

// NewDatabaseStore creates a new database cache store. driverName is a
// DB_CONNECTION value ("pgsql", "postgres" or "mysql").
func NewDatabaseStore(db *sql.DB, table string, driverName string) *DatabaseStore {
	if table == "" {
		table = "cache"
	}
	return &DatabaseStore{db: db, table: table, driver: driverName, now: time.Now}
}

func (s *DatabaseStore) query(format string) string {
	return sqldb.RebindFor(s.driver, fmt.Sprintf(format, s.table, sqldb.QuoteIdent(s.driver, "key")))
}

func (s *DatabaseStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.query("SELECT value FROM %s WHERE %s = ? AND expiration >= ?"), key, s.now().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Put replaces any existing entry for key.
func (s *DatabaseStore) Put(ctx context.Context, key string, value string, ttl time.Duration) error {
	expiration := s.now().Add(ttl).Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.query("DELETE FROM %s WHERE %s = ?"), key); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, s.query("INSERT INTO %s (%s, value, expiration) VALUES (?, ?, ?)"), key, value, expiration); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *DatabaseStore) Forget(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.query("DELETE FROM %s WHERE %s = ?"), key)
	return err
}

func (s *DatabaseStore) Flush(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", s.table))
	return err
}
