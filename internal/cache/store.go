package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"soupbox/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Store is a JSON cache over Redis. A Store with a nil client, or a nil
// *Store, is a valid no-op cache: every read misses and writes are dropped.
type Store struct {
	rdb *redis.Client
}

// New wraps rdb. Passing nil yields a no-op store.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) enabled() bool {
	return s != nil && s.rdb != nil
}

// GetJSON reads key into dest. It reports false on a miss.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !s.enabled() {
		return false, nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores v under key for ttl.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !s.enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, ttl).Err()
}

// Aside serves key from Redis when present. On a miss, or when Redis fails,
// it calls fetch, which must fill dest, and stores the result best-effort.
// Errors from fetch are returned as is and nothing is cached.
func (s *Store) Aside(ctx context.Context, key, family string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := s.GetJSON(ctx, key, dest)
	if err == nil && found {
		observability.CacheLookups.WithLabelValues(family, "hit").Inc()
		return nil
	}
	if s.enabled() {
		observability.CacheLookups.WithLabelValues(family, "miss").Inc()
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = s.SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes keys. Failures are counted by the client hook and otherwise ignored.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if !s.enabled() || len(keys) == 0 {
		return
	}
	_ = s.rdb.Del(ctx, keys...).Err()
}

// Ping checks Redis reachability. A disabled store is always healthy.
func (s *Store) Ping(ctx context.Context) error {
	if !s.enabled() {
		return nil
	}
	return s.rdb.Ping(ctx).Err()
}
