package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisCacheTTL bounds staleness when multiple engine instances
// share a cache; a navigation burst never outlives it.
const DefaultRedisCacheTTL = 5 * time.Minute

const redisKeyPrefix = "tenantflow:tenant:"

// RedisCache shares resolved tenants across engine instances. Unlike
// BurstCache it keeps one entry per identifier with a short TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed tenant cache.
// A non-positive ttl falls back to DefaultRedisCacheTTL.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultRedisCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var t Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		// Undecodable entries are dropped so the next lookup repopulates them.
		_ = c.client.Del(ctx, redisKeyPrefix+key).Err()
		return nil, false
	}
	return &t, true
}

func (c *RedisCache) Set(ctx context.Context, key string, t *Tenant) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, redisKeyPrefix+key).Err()
}
