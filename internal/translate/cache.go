package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobportal/internal/shared/telemetry"
)

const cacheKeyPrefix = "translate:"

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// RedisCache keeps translations in Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(text, target string) string {
	sum := sha256.Sum256([]byte(target + "\x00" + text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Get(ctx context.Context, text, target string) (string, bool) {
	val, err := c.client.Get(ctx, cacheKey(text, target)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			telemetry.Warn("translate.cache.get_failed", map[string]any{"error": err})
		}
		return "", false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, text, target, translated string) {
	if err := c.client.Set(ctx, cacheKey(text, target), translated, c.ttl).Err(); err != nil {
		telemetry.Warn("translate.cache.set_failed", map[string]any{"error": err})
	}
}
