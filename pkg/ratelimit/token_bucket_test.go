package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketRateLimiter_IsPerKey(t *testing.T) {
	limiter := NewTokenBucketRateLimiter(1, time.Second)

	limited, err := limiter.IsLimited("client-a")
	require.NoError(t, err)
	assert.False(t, limited)

	limited, err = limiter.IsLimited("client-a")
	require.NoError(t, err)
	assert.True(t, limited, "bucket of one is empty after the first request")

	limited, err = limiter.IsLimited("client-b")
	require.NoError(t, err)
	assert.False(t, limited)
}

func TestTokenBucketRateLimiter_EmptyKeySharesBucket(t *testing.T) {
	limiter := NewTokenBucketRateLimiter(1, time.Minute)

	limited, _ := limiter.IsLimited("")
	assert.False(t, limited)
	limited, _ = limiter.IsLimited("")
	assert.True(t, limited)
}

func TestTokenBucketRateLimiter_SweepsIdleBuckets(t *testing.T) {
	limiter := NewTokenBucketRateLimiter(10, time.Millisecond)

	_, _ = limiter.IsLimited("stale")
	time.Sleep(5 * time.Millisecond)

	for i := 1; i < sweepInterval; i++ {
		_, _ = limiter.IsLimited("fresh")
	}

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.buckets, "stale")
	assert.Contains(t, limiter.buckets, "fresh")
}

func TestTokenBucketRateLimiter_GetLimitDetails(t *testing.T) {
	requests, window := NewTokenBucketRateLimiter(100, time.Minute).GetLimitDetails()
	assert.Equal(t, 100, requests)
	assert.Equal(t, time.Minute, window)
}
