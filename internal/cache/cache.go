// Package cache is a best-effort JSON cache over Redis. Every failure degrades
// to the store path; a nil *Cache is a usable no-op so the cache stays optional.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"blogapi/internal/logging"
)

type Cache struct {
	rdb *redis.Client
	log logging.Logger
}

// New returns nil when addr is empty, which disables caching entirely.
func New(addr, password string, log logging.Logger) *Cache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &Cache{rdb: rdb, log: log}
}

// Get unmarshals the cached value for key into dest and reports whether it hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn(ctx, "cache read failed", "key", key, "error", err.Error())
		}
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		c.log.Warn(ctx, "cache entry corrupt", "key", key, "error", err.Error())
		return false
	}
	return true
}

// Set stores val under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, val any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(val)
	if err != nil {
		c.log.Warn(ctx, "cache marshal failed", "key", key, "error", err.Error())
		return
	}
	if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		c.log.Warn(ctx, "cache write failed", "key", key, "error", err.Error())
	}
}

// Invalidate deletes every key under prefix. Entries also age out via TTL, so
// a failure here only extends staleness.
func (c *Cache) Invalidate(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn(ctx, "cache invalidate failed", "key", iter.Val(), "error", err.Error())
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn(ctx, "cache scan failed", "prefix", prefix, "error", err.Error())
	}
}

// Close releases the underlying client.
func (c *Cache) Close() {
	if c != nil {
		_ = c.rdb.Close()
	}
}
