package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/femi9outfit/storefront/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseDriver_Push(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	driver := NewDatabaseDriver(config.DatabaseConfig{Table: "jobs", Connection: "mysql"}, db)

	queueName := "mail"
	body := []byte(`{"displayName":"mail:send"}`)

	mock.ExpectExec(`INSERT INTO jobs \(queue, payload, attempts, available_at, created_at\) VALUES \(\?, \?, 0, \?, \?\)`).
		WithArgs(queueName, body, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, driver.Push(context.Background(), queueName, body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseDriver_Pop_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	driver := NewDatabaseDriver(config.DatabaseConfig{Connection: "pgsql"}, db)
	body := []byte(`{"displayName":"mail:send"}`)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, payload FROM jobs WHERE queue = \$1 AND available_at <= \$2 ORDER BY id ASC LIMIT 1 FOR UPDATE SKIP LOCKED`).
		WithArgs("mail", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payload"}).AddRow(7, body))
	mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1`).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	job, err := driver.Pop(context.Background(), "mail")
	require.NoError(t, err)
	assert.Equal(t, "7", job.ID)
	assert.Equal(t, body, job.Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseDriver_Pop_EmptyUntilCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	driver := NewDatabaseDriver(config.DatabaseConfig{Connection: "mysql"}, db)
	driver.pollInterval = time.Hour

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, payload FROM jobs`).
		WithArgs("mail", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payload"}))
	mock.ExpectRollback()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = driver.Pop(ctx, "mail")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseDriver_Pop_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	driver := NewDatabaseDriver(config.DatabaseConfig{Connection: "mysql"}, db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, payload FROM jobs`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err = driver.Pop(context.Background(), "mail")
	assert.ErrorContains(t, err, "connection reset")
}

func TestDatabaseFailedJobProvider_Log(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	provider := NewDatabaseFailedJobProvider(db, "", "pgsql")

	mock.ExpectExec(`INSERT INTO failed_jobs \(connection, queue, payload, exception, failed_at\) VALUES \(\$1, \$2, \$3, \$4, \$5\)`).
		WithArgs("database", "mail", []byte("{}"), "smtp: connect", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, provider.Log(context.Background(), "database", "mail", []byte("{}"), "smtp: connect"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
