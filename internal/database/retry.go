package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog"
)

var (
	retryInitialInterval = 500 * time.Millisecond
	retryMaxInterval     = 5 * time.Second
)

// connectWithRetry runs connect with exponential backoff until it succeeds,
// maxElapsed passes or ctx ends. A zero maxElapsed tries once.
func connectWithRetry(ctx context.Context, maxElapsed time.Duration, log zerolog.Logger, driver string, connect func() error) error {
	if maxElapsed <= 0 {
		return connect()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.MaxInterval = retryMaxInterval
	bo.MaxElapsedTime = maxElapsed

	return backoff.RetryNotify(connect, backoff.WithContext(bo, ctx), func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("driver", driver).Dur("retry_in", wait).Msg("database not reachable, retrying")
	})
}
