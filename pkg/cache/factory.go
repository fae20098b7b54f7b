package cache

import (
	"database/sql"
	"fmt"

	"github.com/femi9outfit/storefront/pkg/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "femi9_cache:"

// NewStore builds the store selected by CACHE_STORE. Clients that the
// chosen store does not need may be nil.
func NewStore(cfg config.Config, rdb *redis.Client, db *sql.DB) (Store, error) {
	switch cfg.Cache.Store {
	case "", "none", "null":
		return NullStore{}, nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("cache store redis requires a redis client")
		}
		return NewRedisStore(rdb, keyPrefix), nil
	case "memcached":
		if len(cfg.Cache.MemcachedServers) == 0 {
			return nil, fmt.Errorf("cache store memcached requires MEMCACHED_SERVERS")
		}
		return NewMemcachedStore(keyPrefix, cfg.Cache.MemcachedServers...), nil
	case "database":
		if db == nil {
			return nil, fmt.Errorf("cache store database requires a database connection")
		}
		return NewDatabaseStore(db, cfg.Cache.Table, cfg.Database.Connection), nil
	default:
		return nil, fmt.Errorf("unsupported cache store: %s", cfg.Cache.Store)
	}
}
