package config

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/akeren/interest-waitlist/config/router"
	"github.com/akeren/interest-waitlist/internal/log"
	pkgredis "github.com/akeren/interest-waitlist/pkg/redis"
	"github.com/akeren/interest-waitlist/pkg/utils"
	"github.com/go-redis/redis/v8"
)

var ErrCacheNotConfigured = errors.New("cache: REDIS_HOST is not set")

// Cache is the string cache backing the interest count and, through its Redis
// client, the distributed rate limiters.
type Cache interface {
	// Get returns ("", nil) for a missing key.
	Get(ctx context.Context, key string) (string, error)
	// Set with ttl=0 never expires.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// CacheConfig is read from REDIS_HOST, REDIS_PORT, REDIS_PASSWORD and
// REDIS_DB. Redis is optional; an empty host disables it.
type CacheConfig pkgredis.Config

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{
		Host:     utils.GetEnvTrimmed("REDIS_HOST"),
		Port:     utils.GetEnvTrimmedOrDefault("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       utils.GetEnvIntOrDefault("REDIS_DB", 0),
	}
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

func (cc *CacheConfig) NewCache(logger *log.Logger) (Cache, error) {
	if !cc.IsConfigured() {
		return nil, ErrCacheNotConfigured
	}

	cfg := pkgredis.Config(*cc)
	cache, err := pkgredis.NewRedisCache(&cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Redis connected", "addr", cfg.Addr(), "db", cfg.DB)
	return cache, nil
}

// NewCacheOrNil degrades to no cache: the count is then read from the
// database and rate limits are kept in memory.
func (cc *CacheConfig) NewCacheOrNil(logger *log.Logger) Cache {
	cache, err := cc.NewCache(logger)
	switch {
	case errors.Is(err, ErrCacheNotConfigured):
		logger.Info("Redis not configured; running without cache")
		return nil
	case err != nil:
		logger.Error("Redis unavailable; running without cache", "error", err)
		return nil
	}
	return cache
}

func GetRedisClient(cache Cache) *redis.Client {
	if provider, ok := cache.(router.RedisClientProvider); ok {
		return provider.GetClient()
	}
	return nil
}

func CloseCache(cache Cache, logger *log.Logger) error {
	if cache == nil {
		return nil
	}
	if err := cache.Close(); err != nil {
		logger.Error("Failed to close cache", "error", err)
		return err
	}
	logger.Info("Cache connection closed")
	return nil
}
