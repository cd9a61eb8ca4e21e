package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a cached scheduling result is served.
const DefaultTTL = 5 * time.Minute

const keyPrefix = "execassist:scheduling:"

// RedisResultCache stores scheduling results in Redis.
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisResultCache creates a cache on an existing client.
func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisResultCache{client: client, ttl: ttl}
}

// Get returns the cached result for key. A miss is not an error.
func (c *RedisResultCache) Get(ctx context.Context, key string) (domain.SchedulingResult, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SchedulingResult{}, false, nil
	}
	if err != nil {
		return domain.SchedulingResult{}, false, fmt.Errorf("redis get: %w", err)
	}

	result, err := decodeResult(data)
	if err != nil {
		return domain.SchedulingResult{}, false, err
	}
	return result, true, nil
}

// Set stores the result under key for the configured TTL.
func (c *RedisResultCache) Set(ctx context.Context, key string, result domain.SchedulingResult) error {
	data, err := encodeResult(result)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
