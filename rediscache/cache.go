// Package rediscache adapts a Redis client to the cache contract used by the
// captcha resolver. Keys are namespaced under a configurable prefix and every
// entry carries a TTL so abandoned records age out server-side.
package rediscache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "goSecure:captcha:"

// Cache stores string records in Redis. Safe for concurrent use.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New returns a cache on top of client. An empty prefix falls back to the
// package default; a non-positive ttl stores entries without expiry.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultPrefix
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the value under key and whether it was present.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Put stores value under key with the configured TTL.
func (c *Cache) Put(ctx context.Context, key string, value string) error {
	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}
