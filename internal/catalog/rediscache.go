package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/job"
)

const redisKeyPrefix = "career-matcher:search:"

// RedisCache is the alternative cache backend. Freshness is delegated to the
// server-side TTL, so entries simply disappear after the window instead of
// lingering stale.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// OpenRedisCache connects to redis at addr and verifies connectivity.
func OpenRedisCache(ctx context.Context, addr, password string, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisCache{client: client, logger: logger}, nil
}

func (c *RedisCache) Lookup(ctx context.Context, key string) ([]*job.Job, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("redis cache lookup failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var jobs []*job.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		c.logger.Warn("dropping undecodable redis cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return jobs, true
}

func (c *RedisCache) Store(ctx context.Context, key string, jobs []*job.Job) error {
	data, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("encoding jobs for redis: %w", err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+key, data, FreshnessWindow).Err(); err != nil {
		return fmt.Errorf("storing jobs in redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
