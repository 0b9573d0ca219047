package mongostore

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"fittrack/api/internal/ids"
	"fittrack/api/internal/repository"
	"fittrack/api/internal/repository/repotest"
)

// Set FITTRACK_TEST_MONGO_URI to run against a live server. Each subtest
// gets its own throwaway database.
func TestStore(t *testing.T) {
	uri := os.Getenv("FITTRACK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("FITTRACK_TEST_MONGO_URI not set")
	}

	repotest.Run(t, func(t *testing.T) repository.Store {
		ctx := context.Background()
		store, err := NewStore(ctx, uri, "fittrack_test_"+ids.New())
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = store.db.Drop(context.Background())
			_ = store.Close(context.Background())
		})
		return store.Repositories()
	})
}
