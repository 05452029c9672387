package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TokenBucketRateLimiter gives each key a bucket of requests tokens that
// refills evenly over window. It is process-local.
type TokenBucketRateLimiter struct {
	requests int
	window   time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
	ops     uint64
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewTokenBucketRateLimiter(requests int, window time.Duration) *TokenBucketRateLimiter {
	return &TokenBucketRateLimiter{
		requests: requests,
		window:   window,
		buckets:  make(map[string]*bucket),
	}
}

func (r *TokenBucketRateLimiter) GetLimitDetails() (int, time.Duration) {
	return r.requests, r.window
}

func (r *TokenBucketRateLimiter) IsLimited(key string) (bool, error) {
	if key == "" {
		key = emptyKey
	}
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(float64(r.requests)/r.window.Seconds()), r.requests)}
		r.buckets[key] = b
	}
	b.lastSeen = now

	r.ops++
	if r.ops%sweepInterval == 0 {
		r.sweep(now.Add(-2 * r.window))
	}

	return !b.limiter.AllowN(now, 1), nil
}

// sweep drops buckets idle since before cutoff; they would be full anyway.
func (r *TokenBucketRateLimiter) sweep(cutoff time.Time) {
	for k, b := range r.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(r.buckets, k)
		}
	}
}

func (r *TokenBucketRateLimiter) Close() error {
	return nil
}
