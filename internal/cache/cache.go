// Package cache provides a wrapper around the redis client.
package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"orderproc/internal/config"
)

// Cache is a wrapper around the redis client.
type Cache struct {
	redis *redis.Client
}

func New(cfg config.Redis) *Cache {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr()})
	return &Cache{
		redis: rdb,
	}
}

// Get gets a value from the cache.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.redis.Get(ctx, key).Result()
}

// Set sets a value in the cache.
func (c *Cache) Set(ctx context.Context, key string, value any, expirationTime time.Duration) error {
	return c.redis.Set(ctx, key, value, expirationTime).Err()
}

// SetNX sets a value only if the key does not exist yet and reports
// whether this call claimed it.
func (c *Cache) SetNX(ctx context.Context, key string, value any, expirationTime time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, value, expirationTime).Result()
}

// Del removes keys from the cache.
func (c *Cache) Del(ctx context.Context, keys ...string) error {
	return c.redis.Del(ctx, keys...).Err()
}

// Ping pings the cache.
func (c *Cache) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}
