package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/config"
)

func TestStatus_NilClientIsDisabled(t *testing.T) {
	status, err := Status(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, status)
}

func TestRedisOptions(t *testing.T) {
	opts := redisOptions(config.RedisConfig{Addr: "cache:6379", Password: "pw", DB: 2})
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "fittrack-api", opts.ClientName)
	assert.Positive(t, opts.ReadTimeout)
}

func TestNewRedisClient_UnreachableFails(t *testing.T) {
	_, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.ErrorContains(t, err, "redis ping 127.0.0.1:1")
}
