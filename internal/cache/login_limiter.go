package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginFailPrefix = "login:fail:"

// LoginLimiter counts failed logins per email in a fixed window that starts
// with the first failure.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

func loginKey(email string) string {
	return loginFailPrefix + email
}

func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	count, err := l.client.Get(ctx, loginKey(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return count < l.maxAttempts, nil
}

func (l *LoginLimiter) Fail(ctx context.Context, email string) error {
	key := loginKey(email)
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	return incr.Err()
}

func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, loginKey(email)).Err()
}
