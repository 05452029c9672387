package redis

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	cache, err := NewRedisCache(&Config{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	return cache, mr
}

func TestRedisCache_GetMissingKeyReturnsEmpty(t *testing.T) {
	cache, _ := newTestCache(t)

	value, err := cache.Get(context.Background(), "interest:count")
	assert.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "interest:count", "42", 30*time.Second))

	value, err := cache.Get(ctx, "interest:count")
	require.NoError(t, err)
	assert.Equal(t, "42", value)
	assert.Equal(t, 30*time.Second, mr.TTL("interest:count"))

	require.NoError(t, cache.Delete(ctx, "interest:count"))
	assert.False(t, mr.Exists("interest:count"))
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Second))
	mr.FastForward(2 * time.Second)

	value, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestRedisCache_PingAndClient(t *testing.T) {
	cache, _ := newTestCache(t)

	assert.NoError(t, cache.Ping(context.Background()))
	assert.NotNil(t, cache.GetClient())
}

func TestNewRedisCache_RequiresHost(t *testing.T) {
	_, err := NewRedisCache(&Config{})
	assert.Error(t, err)
}

func TestNewRedisCache_UnreachableServer(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	mr.Close()

	_, err = NewRedisCache(&Config{Host: host, Port: port})
	assert.Error(t, err)
}
