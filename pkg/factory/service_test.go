package factory

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/akeren/interest-waitlist/internal/log"
	pkgredis "github.com/akeren/interest-waitlist/pkg/redis"
	"github.com/akeren/interest-waitlist/pkg/ratelimit"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingOnlyCache struct{}

func (pingOnlyCache) Ping(context.Context) error { return nil }

func TestFactoryContainer_SubmissionLimiterInMemory(t *testing.T) {
	container := NewFactoryContainer(log.NewDiscardLogger(), &RateLimitConfig{
		Requests: 5,
		Window:   time.Minute,
	}, nil)

	limiter := container.SubmissionRateLimiterFactory.CreateRateLimiter()
	assert.IsType(t, &ratelimit.FixedWindowRateLimiter{}, limiter)

	requests, window := limiter.GetLimitDetails()
	assert.Equal(t, 5, requests)
	assert.Equal(t, time.Minute, window)
}

func TestFactoryContainer_CacheWithoutClientStaysInMemory(t *testing.T) {
	container := NewFactoryContainer(nil, &RateLimitConfig{Requests: 5, Window: time.Minute}, pingOnlyCache{})

	assert.IsType(t, &ratelimit.FixedWindowRateLimiter{}, container.SubmissionRateLimiterFactory.CreateRateLimiter())
}

func TestFactoryContainer_SubmissionLimiterUsesRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	cache, err := pkgredis.NewRedisCache(&pkgredis.Config{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	container := NewFactoryContainer(log.NewDiscardLogger(), &RateLimitConfig{Requests: 1, Window: time.Minute}, cache)
	limiter := container.SubmissionRateLimiterFactory.CreateRateLimiter()
	require.IsType(t, &ratelimit.RedisFixedWindowRateLimiter{}, limiter)

	limited, err := limiter.IsLimited("10.0.0.1")
	require.NoError(t, err)
	assert.False(t, limited)

	limited, err = limiter.IsLimited("10.0.0.1")
	require.NoError(t, err)
	assert.True(t, limited)
}

func TestFactoryContainer_MonitoringLimiter(t *testing.T) {
	container := NewFactoryContainer(nil, &RateLimitConfig{Requests: 5, Window: time.Minute}, nil)

	limiter := container.MonitoringRateLimiterFactory.CreateRateLimiter()
	assert.IsType(t, &ratelimit.TokenBucketRateLimiter{}, limiter)

	requests, window := limiter.GetLimitDetails()
	assert.Equal(t, MonitoringRequestsPerMinute, requests)
	assert.Equal(t, time.Minute, window)
}

func TestFactoryContainer_AdminLimiter(t *testing.T) {
	container := NewFactoryContainer(nil, &RateLimitConfig{Requests: 5, Window: time.Minute}, nil)

	requests, window := container.AdminRateLimiterFactory.CreateRateLimiter().GetLimitDetails()
	assert.Equal(t, AdminRequestsPerMinute, requests)
	assert.Equal(t, time.Minute, window)
}
