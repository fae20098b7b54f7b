package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcachedStore keeps entries in memcached. Flush clears the whole
// server, not just this store's prefix.
type MemcachedStore struct {
	client *memcache.Client
	prefix string
}

// NewMemcachedStore connects lazily to servers and stores keys under prefix.
func NewMemcachedStore(prefix string, servers ...string) *MemcachedStore {
	return &MemcachedStore{client: memcache.New(servers...), prefix: prefix}
}

func (s *MemcachedStore) Get(ctx context.Context, key string) (string, error) {
	item, err := s.client.Get(s.prefix + key)
	switch {
	case errors.Is(err, memcache.ErrCacheMiss):
		return "", ErrMiss
	case err != nil:
		return "", err
	}
	return string(item.Value), nil
}

// Put stores value; ttl is rounded down to whole seconds, and a ttl under
// one second keeps the entry until evicted.
func (s *MemcachedStore) Put(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(&memcache.Item{
		Key:        s.prefix + key,
		Value:      []byte(value),
		Expiration: int32(ttl / time.Second),
	})
}

func (s *MemcachedStore) Forget(ctx context.Context, key string) error {
	if err := s.client.Delete(s.prefix + key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}

func (s *MemcachedStore) Flush(ctx context.Context) error {
	return s.client.DeleteAll()
}
