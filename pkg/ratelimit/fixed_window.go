package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// FixedWindowRateLimiter allows up to requests operations per key inside a
// window that opens on the first use of the key. The first use after the
// window has elapsed starts a fresh window. It is process-local.
type FixedWindowRateLimiter struct {
	requests int
	window   time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*fixedWindowEntry
	ops     uint64
}

type fixedWindowEntry struct {
	count   int
	resetAt time.Time
}

func NewFixedWindowRateLimiter(requests int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		requests: requests,
		window:   window,
		now:      time.Now,
		entries:  make(map[string]*fixedWindowEntry),
	}
}

// WithClock replaces the time source. Used by tests.
func (r *FixedWindowRateLimiter) WithClock(now func() time.Time) *FixedWindowRateLimiter {
	r.now = now
	return r
}

func (r *FixedWindowRateLimiter) GetLimitDetails() (int, time.Duration) {
	return r.requests, r.window
}

func (r *FixedWindowRateLimiter) IsLimited(key string) (bool, error) {
	if key == "" {
		key = emptyKey
	}

	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops++
	if r.ops%sweepInterval == 0 {
		for k, e := range r.entries {
			if now.After(e.resetAt) {
				delete(r.entries, k)
			}
		}
	}

	entry, ok := r.entries[key]
	if !ok || now.After(entry.resetAt) {
		r.entries[key] = &fixedWindowEntry{count: 1, resetAt: now.Add(r.window)}
		return false, nil
	}

	if entry.count >= r.requests {
		return true, nil
	}

	entry.count++
	return false, nil
}

func (r *FixedWindowRateLimiter) Close() error {
	return nil
}

const fixedWindowPrefix = "ratelimit:fixed:"

// RedisFixedWindowRateLimiter shares fixed-window counters between instances.
type RedisFixedWindowRateLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
	logger   Logger
}

func NewRedisFixedWindowRateLimiter(client *redis.Client, requests int, window time.Duration, logger Logger) *RedisFixedWindowRateLimiter {
	return &RedisFixedWindowRateLimiter{
		client:   client,
		requests: requests,
		window:   window,
		logger:   logger,
	}
}

// The counter expires with the window, so the next INCR starts a new one.
var fixedWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	if count > tonumber(ARGV[2]) then
		return 1
	end
	return 0
`)

func (r *RedisFixedWindowRateLimiter) GetLimitDetails() (int, time.Duration) {
	return r.requests, r.window
}

func (r *RedisFixedWindowRateLimiter) IsLimited(key string) (bool, error) {
	fullKey := withPrefix(fixedWindowPrefix, key)

	result, err := fixedWindowScript.Run(context.Background(), r.client, []string{fullKey}, r.window.Milliseconds(), r.requests).Int64()
	if err != nil {
		logScriptError(r.logger, "Redis fixed window script failed", fullKey, err)
		return false, fmt.Errorf("rate limiter Redis error: %w", err)
	}

	return result == 1, nil
}

// Close is a no-op; the client belongs to the cache.
func (r *RedisFixedWindowRateLimiter) Close() error {
	return nil
}
