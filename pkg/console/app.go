// Package console registers the femi9 subcommands on the root command and
// wires configuration into mailers, queues, caches and order services.
package console

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/femi9outfit/storefront/pkg/cache"
	"github.com/femi9outfit/storefront/pkg/config"
	"github.com/femi9outfit/storefront/pkg/database"
	dbdriver "github.com/femi9outfit/storefront/pkg/driver/database"
	redisdriver "github.com/femi9outfit/storefront/pkg/driver/redis"
	sqsdriver "github.com/femi9outfit/storefront/pkg/driver/sqs"
	"github.com/femi9outfit/storefront/pkg/mail"
	"github.com/femi9outfit/storefront/pkg/notify"
	"github.com/femi9outfit/storefront/pkg/orders"
	"github.com/femi9outfit/storefront/pkg/queue"
	"github.com/femi9outfit/storefront/pkg/root"
	"github.com/femi9outfit/storefront/pkg/schedule"
	"github.com/femi9outfit/storefront/pkg/telemetry"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// app holds the connections a command opened, created on first use.
type app struct {
	cfg *config.Config
	db  *sql.DB
	rdb *goredis.Client
}

func newApp() (*app, error) {
	cfg, err := root.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := telemetry.SetGlobalLogger(os.Stderr, cfg.App.LogLevel, cfg.App.LogFormat); err != nil {
		return nil, err
	}
	return &app{cfg: cfg}, nil
}

func (a *app) database(ctx context.Context) (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.NewFactory().Connect(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) redis() *goredis.Client {
	if a.rdb == nil {
		a.rdb = redisdriver.NewClient(a.cfg.Redis)
	}
	return a.rdb
}

func (a *app) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	return errors.Join(errs...)
}

// queueDriver returns the driver for QUEUE_CONNECTION and where failed
// jobs go. The sync connection has no driver.
func (a *app) queueDriver(ctx context.Context) (queue.Driver, queue.FailedJobProvider, error) {
	switch a.cfg.Queue.Connection {
	case "", "sync":
		return nil, nil, nil
	case "redis":
		d := redisdriver.NewRedisDriverFromClient(a.redis())
		return d, d, nil
	case "database":
		db, err := a.database(ctx)
		if err != nil {
			return nil, nil, err
		}
		return dbdriver.NewDatabaseDriver(a.cfg.Database, db),
			dbdriver.NewDatabaseFailedJobProvider(db, "failed_jobs", a.cfg.Database.Connection), nil
	case "sqs":
		client, err := config.LoadSQSClient(ctx, a.cfg.SQS)
		if err != nil {
			return nil, nil, err
		}
		return sqsdriver.NewSQSDriver(client, a.cfg.SQS.QueueUrl), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported queue connection: %s", a.cfg.Queue.Connection)
	}
}

// notificationMailer delivers directly for the sync connection and
// queues otherwise.
func (a *app) notificationMailer(ctx context.Context) (mail.Mailer, error) {
	driver, _, err := a.queueDriver(ctx)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return mail.NewMailer(ctx, a.cfg.Mail)
	}
	publisher := queue.NewPublisher(driver, a.cfg.Queue.Name, a.cfg.Queue.MaxTries)
	return queue.NewMailPublisher(publisher), nil
}

func (a *app) orderService(ctx context.Context) (*orders.Service, error) {
	db, err := a.database(ctx)
	if err != nil {
		return nil, err
	}

	var rdb *goredis.Client
	if a.cfg.Cache.Store == "redis" {
		rdb = a.redis()
	}
	names, err := cache.NewStore(*a.cfg, rdb, db)
	if err != nil {
		return nil, err
	}

	mailer, err := a.notificationMailer(ctx)
	if err != nil {
		return nil, err
	}

	repo := orders.NewSQLRepository(db, a.cfg.Database.Connection, names, a.cfg.Cache.TTL)
	notifier := notify.NewNotifier(mailer, a.cfg.App.Name, a.cfg.App.AdminNotificationEmail)
	return orders.NewService(repo, notifier), nil
}

// lockProvider picks the scheduler lock backend from CACHE_STORE.
func (a *app) lockProvider(ctx context.Context) (schedule.LockProvider, error) {
	switch a.cfg.Cache.Store {
	case "redis":
		host, _ := os.Hostname()
		return schedule.NewRedisLockProvider(a.redis(), fmt.Sprintf("%s:%d", host, os.Getpid())), nil
	case "database":
		db, err := a.database(ctx)
		if err != nil {
			return nil, err
		}
		return schedule.NewDatabaseLockProvider(db, a.cfg.Database.Connection), nil
	default:
		log.Info().Str("store", a.cfg.Cache.Store).Msg("No distributed lock provider configured. OnOneServer will not work across multiple servers.")
		return nil, nil
	}
}
