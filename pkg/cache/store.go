// Package cache holds the key/value stores used for product-name lookups.
package cache

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store represents a cache backend
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string, ttl time.Duration) error
	Forget(ctx context.Context, key string) error
	Flush(ctx context.Context) error
}

// RememberMany returns cached values for ids, stored under prefix+id.
// Ids that miss are loaded with one call to load and written back for
// ttl. Ids that load does not return are absent from the result. Store
// failures are logged and treated as misses.
func RememberMany(ctx context.Context, s Store, prefix string, ids []string, ttl time.Duration, load func(ctx context.Context, missing []string) (map[string]string, error)) (map[string]string, error) {
	values := make(map[string]string, len(ids))
	var missing []string
	for _, id := range ids {
		if _, ok := values[id]; ok || slices.Contains(missing, id) {
			continue
		}
		value, err := s.Get(ctx, prefix+id)
		if err == nil {
			values[id] = value
			continue
		}
		if !errors.Is(err, ErrMiss) {
			log.Ctx(ctx).Warn().Err(err).Str("key", prefix+id).Msg("Cache read failed")
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return values, nil
	}

	loaded, err := load(ctx, missing)
	if err != nil {
		return values, err
	}
	for id, value := range loaded {
		values[id] = value
		if err := s.Put(ctx, prefix+id, value, ttl); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("key", prefix+id).Msg("Cache write failed")
		}
	}
	return values, nil
}

// NullStore never holds anything.
type NullStore struct{}

func (NullStore) Get(ctx context.Context, key string) (string, error) {
	return "", ErrMiss
}

func (NullStore) Put(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}

func (NullStore) Forget(ctx context.Context, key string) error {
	return nil
}

func (NullStore) Flush(ctx context.Context) error {
	return nil
}
