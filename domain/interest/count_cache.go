package interest

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/circuitbreaker"
	"github.com/akeren/interest-waitlist/pkg/constants"
)

//go:generate mockgen -source=count_cache.go -destination=mock_count_cache.go -package=interest

// Cache is the subset of the application cache used for the signup count.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CountCache is a best-effort, cache-aside store for the total signup count.
// Failures are logged and reported as misses; they never fail a request.
type CountCache interface {
	Get(ctx context.Context) (int64, bool)
	Set(ctx context.Context, count int64)
	Invalidate(ctx context.Context)
}

type cachedCount struct {
	cache   Cache
	ttl     time.Duration
	breaker *circuitbreaker.Breaker
	logger  *log.Logger

	// stale is set when an invalidation did not reach the cache. Reads miss
	// until a fresh count has been written over the old one.
	stale atomic.Bool
}

// NewCountCache returns a no-op cache when cache is nil.
func NewCountCache(cache Cache, ttl time.Duration, logger *log.Logger) CountCache {
	if cache == nil {
		return noopCountCache{}
	}
	if ttl <= 0 {
		ttl = constants.DefaultInterestCountCacheTTL
	}

	cc := &cachedCount{cache: cache, ttl: ttl, logger: logger}
	cc.breaker = circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 3,
		RecoveryTimeout:  30 * time.Second,
		SuccessThreshold: 1,
		OnStateChange: func(from, to circuitbreaker.State) {
			if cc.logger != nil {
				cc.logger.Warn("Count cache circuit changed state", "from", from.String(), "to", to.String())
			}
		},
	})

	return cc
}

func (c *cachedCount) Get(ctx context.Context) (int64, bool) {
	if c.stale.Load() {
		return 0, false
	}

	logger := log.GetLoggerInstanceFromContext(ctx, c.logger)

	var raw string
	err := c.breaker.Call(func() error {
		var err error
		raw, err = c.cache.Get(ctx, constants.InterestCountCacheKey)
		return err
	})
	if err != nil {
		logger.Warn("Count cache read failed", "error", err)
		return 0, false
	}

	if raw == "" {
		return 0, false
	}

	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || count < 0 {
		logger.Warn("Discarding malformed cached count", "value", raw)
		c.Invalidate(ctx)
		return 0, false
	}

	return count, true
}

func (c *cachedCount) Set(ctx context.Context, count int64) {
	err := c.breaker.Call(func() error {
		return c.cache.Set(ctx, constants.InterestCountCacheKey, strconv.FormatInt(count, 10), c.ttl)
	})
	if err != nil {
		log.GetLoggerInstanceFromContext(ctx, c.logger).Warn("Count cache write failed", "error", err)
		return
	}
	c.stale.Store(false)
}

func (c *cachedCount) Invalidate(ctx context.Context) {
	err := c.breaker.Call(func() error {
		return c.cache.Delete(ctx, constants.InterestCountCacheKey)
	})
	if err != nil {
		c.stale.Store(true)
		log.GetLoggerInstanceFromContext(ctx, c.logger).Warn("Count cache invalidation failed", "error", err)
		return
	}
	c.stale.Store(false)
}

type noopCountCache struct{}

func (noopCountCache) Get(context.Context) (int64, bool) { return 0, false }
func (noopCountCache) Set(context.Context, int64) {}
func (noopCountCache) Invalidate(context.Context) {}
