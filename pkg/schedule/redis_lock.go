package schedule

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockPrefix = "femi9_schedule_lock:"

// RedisLockProvider implements LockProvider using SET NX with expiry.
type RedisLockProvider struct {
	client *redis.Client
	owner  string
}

// NewRedisLockProvider creates a provider; owner identifies this process
// in the lock value.
func NewRedisLockProvider(client *redis.Client, owner string) *RedisLockProvider {
	return &RedisLockProvider{client: client, owner: owner}
}

func (r *RedisLockProvider) GetLock(ctx context.Context, name string, duration time.Duration) (bool, error) {
	return r.client.SetNX(ctx, lockPrefix+name, r.owner, duration).Result()
}

// ReleaseLock deletes the lock only if this process still owns it.
func (r *RedisLockProvider) ReleaseLock(ctx context.Context, name string) error {
	return releaseScript.Run(ctx, r.client, []string{lockPrefix + name}, r.owner).Err()
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)
