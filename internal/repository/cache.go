// internal/repository/cache.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/common/metrics"

	"github.com/redis/go-redis/v9"
)

// Cache is a JSON read-through cache in front of the repositories.
// A nil *Cache or a nil redis client disables caching.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(client *redis.Client, prefix string, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl, logger: log}
}

func (c *Cache) key(parts ...string) string {
	if c == nil {
		return ""
	}
	k := c.prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// get loads a cached value into dest. Misses and cache errors both report false;
// errors are logged so a degraded redis never fails a lookup.
func (c *Cache) get(ctx context.Context, entity, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		result := "miss"
		if !errors.Is(err, redis.Nil) {
			result = "error"
			c.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err})
		}
		metrics.CacheLookups.WithLabelValues(entity, result).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		c.logger.Warn("cache entry corrupt", map[string]interface{}{"key": key, "error": err})
		metrics.CacheLookups.WithLabelValues(entity, "error").Inc()
		return false
	}

	metrics.CacheLookups.WithLabelValues(entity, "hit").Inc()
	return true
}

func (c *Cache) set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err})
	}
}

// Invalidate removes the cached prospect so the next read goes to postgres.
func (c *Cache) Invalidate(ctx context.Context, tenantID, prospectID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, c.key("prospect", tenantID, prospectID)).Err(); err != nil {
		return fmt.Errorf("invalidate prospect %s: %w", prospectID, err)
	}
	return nil
}
