package redis

import (
	"context"
	"errors"

	"github.com/femi9outfit/storefront/pkg/config"
	"github.com/femi9outfit/storefront/pkg/queue"
	goredis "github.com/redis/go-redis/v9"
)

// keyPrefix namespaces queue lists in Redis.
const keyPrefix = "queues:"

type RedisDriver struct {
	Client *goredis.Client
}

// NewRedisDriver creates a new Redis driver instance
func NewRedisDriver(cfg config.RedisConfig) *RedisDriver {
	return NewRedisDriverFromClient(NewClient(cfg))
}

// NewRedisDriverFromClient wraps an existing client.
func NewRedisDriverFromClient(client *goredis.Client) *RedisDriver {
	return &RedisDriver{Client: client}
}

// NewClient builds a go-redis client from config.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Pop blocks until a job is available and returns it. BLPOP honours ctx.
func (r *RedisDriver) Pop(ctx context.Context, queueName string) (*queue.Job, error) {
	result, err := r.Client.BLPop(ctx, 0, keyPrefix+queueName).Result()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	// result[0] is the key, result[1] is the payload
	if len(result) < 2 {
		return nil, errors.New("redis: malformed BLPOP reply")
	}

	return &queue.Job{
		Body: []byte(result[1]),
	}, nil
}

// Push adds a job to the queue
func (r *RedisDriver) Push(ctx context.Context, queueName string, body []byte) error {
	return r.Client.RPush(ctx, keyPrefix+queueName, body).Err()
}

// Ack is a no-op: BLPOP already removed the job.
func (r *RedisDriver) Ack(ctx context.Context, job *queue.Job) error {
	return nil
}

// Log implements queue.FailedJobProvider by pushing to a ":failed" list.
func (r *RedisDriver) Log(ctx context.Context, connection string, queueName string, payload []byte, exception string) error {
	return r.Client.RPush(ctx, keyPrefix+queueName+":failed", payload).Err()
}
