package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const slidingWindowPrefix = "ratelimit:"

// RedisSlidingWindowRateLimiter keeps a sorted set of attempt timestamps per
// key and admits a request while fewer than requests fall inside the window.
type RedisSlidingWindowRateLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
	logger   Logger
	now      func() time.Time
}

func NewRedisSlidingWindowRateLimiter(client *redis.Client, requests int, window time.Duration, logger Logger) *RedisSlidingWindowRateLimiter {
	return &RedisSlidingWindowRateLimiter{
		client:   client,
		requests: requests,
		window:   window,
		logger:   logger,
		now:      time.Now,
	}
}

// KEYS[1] set key; ARGV: now ms, window ms, limit, member.
// Rejected attempts are not recorded.
var slidingWindowScript = redis.NewScript(`
	local now = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	redis.call('ZREMRANGEBYSCORE', KEYS[1], 0, now - window)
	if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[3]) then
		return 1
	end
	redis.call('ZADD', KEYS[1], now, ARGV[4])
	redis.call('PEXPIRE', KEYS[1], window * 2)
	return 0
`)

func (r *RedisSlidingWindowRateLimiter) GetLimitDetails() (int, time.Duration) {
	return r.requests, r.window
}

func (r *RedisSlidingWindowRateLimiter) IsLimited(key string) (bool, error) {
	fullKey := withPrefix(slidingWindowPrefix, key)
	args := []any{r.now().UnixMilli(), r.window.Milliseconds(), r.requests, uuid.NewString()}

	result, err := slidingWindowScript.Run(context.Background(), r.client, []string{fullKey}, args...).Int64()
	if err != nil {
		logScriptError(r.logger, "Redis sliding window script failed", fullKey, err)
		return false, fmt.Errorf("rate limiter Redis error: %w", err)
	}
	return result == 1, nil
}

// Close is a no-op; the client belongs to the cache.
func (r *RedisSlidingWindowRateLimiter) Close() error {
	return nil
}
