package schedule

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"hash/crc32"
	"sync"
	"time"

	sqldb "github.com/femi9outfit/storefront/pkg/database"
)

// DatabaseLockProvider implements LockProvider using SQL advisory locks.
// Advisory locks belong to a database session, so each held lock pins its
// own connection out of the pool until it is released.
type DatabaseLockProvider struct {
	db     *sql.DB
	driver string

	mu    sync.Mutex
	conns map[string]*sql.Conn
}

// NewDatabaseLockProvider creates a new database lock provider
func NewDatabaseLockProvider(db *sql.DB, driver string) *DatabaseLockProvider {
	return &DatabaseLockProvider{
		db:     db,
		driver: driver,
		conns:  make(map[string]*sql.Conn),
	}
}

// GetLock attempts to acquire a lock without waiting. Advisory locks have
// no expiry, so duration is unused.
func (d *DatabaseLockProvider) GetLock(ctx context.Context, name string, duration time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, held := d.conns[name]; held {
		return false, nil
	}

	conn, err := d.db.Conn(ctx)
	if err != nil {
		return false, err
	}
	ok, err := d.acquire(ctx, conn, name)
	if err != nil || !ok {
		conn.Close()
		return false, err
	}

	d.conns[name] = conn
	return true, nil
}

// ReleaseLock releases the lock on the connection that took it. When the
// database does not confirm the release, the connection is discarded so
// the session, and the lock with it, ends.
func (d *DatabaseLockProvider) ReleaseLock(ctx context.Context, name string) error {
	d.mu.Lock()
	conn, held := d.conns[name]
	delete(d.conns, name)
	d.mu.Unlock()

	if !held {
		return fmt.Errorf("schedule: lock %s is not held", name)
	}
	defer conn.Close()

	released, err := d.release(ctx, conn, name)
	if err == nil && !released {
		err = fmt.Errorf("schedule: lock %s was not released", name)
	}
	if err != nil {
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
		return err
	}
	return nil
}

func (d *DatabaseLockProvider) acquire(ctx context.Context, conn *sql.Conn, name string) (bool, error) {
	if sqldb.IsPostgres(d.driver) {
		var ok bool
		if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", lockKey(name)).Scan(&ok); err != nil {
			return false, err
		}
		return ok, nil
	}

	// GET_LOCK returns 1 on success, 0 on timeout, NULL on error
	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, 0)", name).Scan(&result); err != nil {
		return false, err
	}
	if !result.Valid {
		return false, fmt.Errorf("GET_LOCK returned NULL for %s", name)
	}
	return result.Int64 == 1, nil
}

func (d *DatabaseLockProvider) release(ctx context.Context, conn *sql.Conn, name string) (bool, error) {
	if sqldb.IsPostgres(d.driver) {
		var ok bool
		if err := conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", lockKey(name)).Scan(&ok); err != nil {
			return false, err
		}
		return ok, nil
	}

	// RELEASE_LOCK returns 1 when released, 0 when held by another
	// session, NULL when no such lock exists
	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT RELEASE_LOCK(?)", name).Scan(&result); err != nil {
		return false, err
	}
	return result.Valid && result.Int64 == 1, nil
}

// lockKey maps a lock name to the bigint key advisory locks take.
func lockKey(name string) int64 {
	return int64(crc32.ChecksumIEEE([]byte(name)))
}
