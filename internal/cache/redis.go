package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fittrack/api/internal/config"
)

const (
	StatusDisabled = "disabled"
	StatusOK       = "ok"
	StatusError    = "error"
)

func redisOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   "fittrack-api",
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

// NewRedisClient connects and pings once. The client backs login throttling
// only, so short timeouts keep a slow cache from stalling logins.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(redisOptions(cfg))

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Status reports the cache state for the health endpoint. A nil client is
// disabled rather than failing.
func Status(ctx context.Context, client *redis.Client) (string, error) {
	if client == nil {
		return StatusDisabled, nil
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return StatusError, err
	}
	return StatusOK, nil
}
