// Package memcache provides an in-process cache backend suitable for single
// instance deployments and tests. It wraps patrickmn/go-cache, so entries
// expire on their own without a cleanup goroutine per record.
package memcache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores string records in process memory. Safe for concurrent use.
type Cache struct {
	inner *gocache.Cache
}

// New returns a cache whose entries live for ttl and are swept every
// cleanup interval. A non-positive ttl keeps entries until overwritten.
func New(ttl, cleanup time.Duration) *Cache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Cache{inner: gocache.New(ttl, cleanup)}
}

// Get returns the value under key and whether it was present.
func (c *Cache) Get(_ context.Context, key string) (string, bool, error) {
	raw, ok := c.inner.Get(key)
	if !ok {
		return "", false, nil
	}
	val, ok := raw.(string)
	if !ok {
		return "", false, nil
	}
	return val, true, nil
}

// Put stores value under key with the cache's default TTL.
func (c *Cache) Put(_ context.Context, key string, value string) error {
	c.inner.Set(key, value, gocache.DefaultExpiration)
	return nil
}
