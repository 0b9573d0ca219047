package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"fittrack/api/internal/config"
	"fittrack/api/internal/repository"
	"fittrack/api/internal/repository/repotest"
)

// Set FITTRACK_TEST_POSTGRES_DSN to run against a live server. Tables are
// truncated before every subtest.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("FITTRACK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FITTRACK_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := NewPostgresPool(ctx, config.PostgresConfig{DSN: dsn, MaxOpen: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool), "migrations are idempotent")

	repotest.Run(t, func(t *testing.T) repository.Store {
		_, err := pool.Exec(ctx, `TRUNCATE progress_logs, workouts, default_workouts, exercises, default_exercises, users`)
		require.NoError(t, err)
		return repository.NewPostgresStore(pool)
	})
}
