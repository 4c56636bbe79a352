package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache handles caching of rendered page content and project
// metadata in front of the database.
type RedisCache struct {
	client *redis.Client
	ttl    map[string]time.Duration
}

// NewRedisCache creates a Redis cache client from config and verifies
// connectivity.
func NewRedisCache(cfg Config) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB >= 0 {
		opts.DB = cfg.RedisDB
	}
	if cfg.RedisMaxRetries > 0 {
		opts.MaxRetries = cfg.RedisMaxRetries
	}
	if cfg.RedisPoolSize > 0 {
		opts.PoolSize = cfg.RedisPoolSize
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, ttl: cfg.CacheTTL}, nil
}

// NewRedisCacheFromClient wraps an existing client, used by tests.
func NewRedisCacheFromClient(client *redis.Client, ttl map[string]time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func pageKey(projectID, slug string) string {
	return fmt.Sprintf("page:%s:%s", projectID, slug)
}

func projectKey(id string) string {
	return fmt.Sprintf("project:%s", id)
}

// GetJSON retrieves a cached value into dest. It returns false on a
// cache miss; corrupt entries are dropped and reported as errors.
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		c.client.Del(ctx, key)
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}
	return true, nil
}

// SetJSON stores a value under key with the given TTL class.
func (c *RedisCache) SetJSON(ctx context.Context, key, ttlClass string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cached value: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl[ttlClass]).Err()
}

// GetPageContent retrieves cached page content text. The second return
// reports whether the key was present.
func (c *RedisCache) GetPageContent(ctx context.Context, projectID, slug string) (string, bool, error) {
	data, err := c.client.Get(ctx, pageKey(projectID, slug)).Result()
	if err == redis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("redis get failed: %w", err)
	}
	return data, true, nil
}

// SetPageContent caches page content text.
func (c *RedisCache) SetPageContent(ctx context.Context, projectID, slug, content string) error {
	return c.client.Set(ctx, pageKey(projectID, slug), content, c.ttl["page"]).Err()
}

// InvalidatePage removes a page's cached content.
func (c *RedisCache) InvalidatePage(ctx context.Context, projectID, slug string) error {
	return c.client.Del(ctx, pageKey(projectID, slug)).Err()
}

// InvalidateProject removes a project's cached metadata and every cached
// page under it.
func (c *RedisCache) InvalidateProject(ctx context.Context, projectID string) error {
	if err := c.client.Del(ctx, projectKey(projectID)).Err(); err != nil {
		return err
	}

	pattern := fmt.Sprintf("page:%s:*", projectID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan failed for pattern %s: %w", pattern, err)
	}
	return nil
}

// ProjectKey returns the cache key for project metadata.
func (c *RedisCache) ProjectKey(id string) string {
	return projectKey(id)
}

// Incr increments a counter (for rate limiting)
func (c *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, key).Result()
}

// Expire sets a key's expiration
func (c *RedisCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.client.Expire(ctx, key, expiration).Err()
}

// Client exposes the underlying client for health checks and rate limiting
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Ping checks Redis connectivity
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
