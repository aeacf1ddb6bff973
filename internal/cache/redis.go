package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

const keyPrefix = "b3vision:cache:"

// Redis is a TTL cache backed by a shared Redis instance, letting multiple
// replicas reuse each other's computations. Redis errors degrade to cache
// misses — the cache contract allows dropping entries at any time.
type Redis struct {
	rdb *goredis.Client
	ctx context.Context
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(addr, password string) (*Redis, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis connect %s: %w", addr, err)
	}
	slog.Info("redis cache connected", "addr", addr)
	return &Redis{rdb: rdb, ctx: ctx}, nil
}

// Get returns the cached value, or false on absence or any Redis error.
func (r *Redis) Get(key string) ([]byte, bool) {
	val, err := r.rdb.Get(r.ctx, keyPrefix+key).Bytes()
	if err == goredis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("redis cache get failed", "key", key, "err", err)
		return nil, false
	}
	return val, true
}

// Set stores a value with a TTL; failures are logged and ignored.
func (r *Redis) Set(key string, value []byte, ttl time.Duration) {
	if err := r.rdb.Set(r.ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		slog.Warn("redis cache set failed", "key", key, "err", err)
	}
}

// Clear removes keys containing pattern; empty pattern clears the whole
// cache namespace.
func (r *Redis) Clear(pattern string) {
	match := keyPrefix + "*" + pattern + "*"
	iter := r.rdb.Scan(r.ctx, 0, match, 0).Iterator()
	for iter.Next(r.ctx) {
		if err := r.rdb.Del(r.ctx, iter.Val()).Err(); err != nil {
			slog.Warn("redis cache del failed", "key", iter.Val(), "err", err)
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("redis cache scan failed", "pattern", pattern, "err", err)
	}
}

// Close releases the client.
func (r *Redis) Close() error { return r.rdb.Close() }
