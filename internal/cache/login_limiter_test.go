package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/config"
	"fittrack/api/internal/ids"
)

func newTestLimiter(t *testing.T, limit int) *LoginLimiter {
	t.Helper()
	addr := os.Getenv("FITTRACK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FITTRACK_TEST_REDIS_ADDR not set")
	}
	client, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, limit, time.Minute)
}

func TestLoginLimiter_BlocksAfterMaxFailures(t *testing.T) {
	limiter := newTestLimiter(t, 3)
	ctx := context.Background()
	email := ids.New() + "@example.com"
	t.Cleanup(func() { _ = limiter.Reset(ctx, email) })

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, email)
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i)
		require.NoError(t, limiter.Fail(ctx, email))
	}

	ok, err := limiter.Allow(ctx, email)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := limiter.client.TTL(ctx, loginKey(email)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestLoginLimiter_ResetClearsCounter(t *testing.T) {
	limiter := newTestLimiter(t, 1)
	ctx := context.Background()
	email := ids.New() + "@example.com"

	require.NoError(t, limiter.Fail(ctx, email))
	ok, err := limiter.Allow(ctx, email)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, limiter.Reset(ctx, email))
	ok, err = limiter.Allow(ctx, email)
	require.NoError(t, err)
	assert.True(t, ok)
}
