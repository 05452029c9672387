// Package ratelimit provides per-key request limiters. The in-memory variants
// serve a single instance; the Redis variants share state across instances
// through atomic Lua scripts.
package ratelimit

import (
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// Keys are swept of expired entries every sweepInterval operations.
const sweepInterval = 1024

const emptyKey = "__empty__"

type Logger interface {
	Error(msg string, args ...any)
}

type RateLimiter interface {
	GetLimitDetails() (int, time.Duration)
	// IsLimited records an attempt for key and reports whether it is over the
	// limit. Errors are returned alongside false.
	IsLimited(key string) (bool, error)
	Close() error
}

type Strategy string

const (
	// StrategyTokenBucket refills continuously. It is the router-wide default.
	StrategyTokenBucket Strategy = "token_bucket"
	// StrategyFixedWindow counts attempts in a window opened by the first use of a key.
	StrategyFixedWindow Strategy = "fixed_window"
)

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	// Strategy defaults to StrategyTokenBucket.
	Strategy Strategy
	// Redis selects the distributed variant when non-nil.
	Redis  *redis.Client
	Logger Logger
}

// NewRateLimiter picks the implementation for config. Token bucket becomes a
// sliding window log when backed by Redis.
func NewRateLimiter(config *RateLimitConfig) RateLimiter {
	switch {
	case config.Strategy == StrategyFixedWindow && config.Redis != nil:
		return NewRedisFixedWindowRateLimiter(config.Redis, config.Requests, config.Window, config.Logger)
	case config.Strategy == StrategyFixedWindow:
		return NewFixedWindowRateLimiter(config.Requests, config.Window)
	case config.Redis != nil:
		return NewRedisSlidingWindowRateLimiter(config.Redis, config.Requests, config.Window, config.Logger)
	default:
		return NewTokenBucketRateLimiter(config.Requests, config.Window)
	}
}

func withPrefix(prefix, key string) string {
	if strings.HasPrefix(key, prefix) {
		return key
	}
	return prefix + key
}

func logScriptError(logger Logger, msg, key string, err error) {
	if logger != nil {
		logger.Error(msg, "key", key, "error", err)
	}
}
