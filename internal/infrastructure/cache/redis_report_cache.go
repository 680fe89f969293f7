package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meridianfood/backend/internal/application/report"
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisReportCache implements report.ReportCache using Redis. Reports are
// stored as JSON under the key produced by report.CacheKey. Suitable for
// deployments where several instances serve the same reports.
type RedisReportCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
}

// NewRedisReportCache creates a Redis-backed report cache and verifies the
// connection
func NewRedisReportCache(cfg RedisConfig, ttl time.Duration) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{
		client:     client,
		ownsClient: true,
		ttl:        ttl,
	}, nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisReportCacheWithClient(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached report for a key, or (nil, nil) on a cache miss
func (c *RedisReportCache) Get(ctx context.Context, key string) (*report.ConsolidationReport, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}

	var cached report.ConsolidationReport
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &cached, nil
}

// Set stores a report under the key with the configured TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, r *report.ConsolidationReport) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache created it
func (c *RedisReportCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}

// Ensure RedisReportCache implements ReportCache
var _ report.ReportCache = (*RedisReportCache)(nil)
