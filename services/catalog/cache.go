package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores catalog lists between store reads.
type Cache interface {
	// Get decodes the cached value into v and reports whether it was present.
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

const cacheKeyPrefix = "catalog:" + FallbackVersion + ":"

func (c *RedisCache) Get(ctx context.Context, key string, v any) (bool, error) {
	val, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, v); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next load.
		return false, nil
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+key, data, c.ttl).Err()
}
