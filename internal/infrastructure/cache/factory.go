package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meridianfood/backend/internal/application/report"
	"github.com/meridianfood/backend/internal/infrastructure/config"
)

// ReportCacheFactory creates report caches based on configuration
type ReportCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ReportCacheFactoryOption is a functional option for configuring the factory
type ReportCacheFactoryOption func(*ReportCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ReportCacheFactoryOption {
	return func(f *ReportCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ReportCacheFactoryOption {
	return func(f *ReportCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewReportCacheFactory creates a new factory
func NewReportCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...ReportCacheFactoryOption) *ReportCacheFactory {
	f := &ReportCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed report cache
func (f *ReportCacheFactory) CreateRedisCache() (report.ReportCache, error) {
	cache, err := NewRedisReportCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis report cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates a process-local report cache
func (f *ReportCacheFactory) CreateInMemoryCache() report.ReportCache {
	return NewInMemoryReportCache(f.ttl)
}

// CreateCache tries Redis first and falls back to in-memory when Redis is
// unavailable and fallback is allowed
func (f *ReportCacheFactory) CreateCache() (report.ReportCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis report cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for report cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory report cache. "+
		"Cached reports will not be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
