package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/metrics"
	"fittrack/api/internal/models"
	"fittrack/api/internal/repository/memstore"
)

type downBackend struct{}

func (downBackend) Name() string                { return "down" }
func (downBackend) Ping(context.Context) error  { return errors.New("connection refused") }
func (downBackend) Close(context.Context) error { return nil }

func TestSnapshot_CountsEachCollection(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	owner := "user-1"

	for _, id := range []string{"e1", "e2"} {
		require.NoError(t, store.Exercises.Create(ctx, models.Exercise{ID: id, Name: id, CreatedBy: &owner}))
	}
	require.NoError(t, store.DefaultExercises.Create(ctx, models.Exercise{ID: "d1", Name: "Squat"}))
	require.NoError(t, store.DefaultWorkouts.Create(ctx, models.Workout{ID: "w1", Name: "Legs", Exercises: []string{"d1"}}))

	m := metrics.New("test")
	s := NewScheduler(store, m, zerolog.Nop())
	require.NoError(t, s.Snapshot(ctx))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseUp))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CatalogEntries.WithLabelValues("exercises")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogEntries.WithLabelValues("default_exercises")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CatalogEntries.WithLabelValues("workouts")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogEntries.WithLabelValues("default_workouts")))
}

func TestSnapshot_UnreachableDatabase(t *testing.T) {
	store := memstore.New()
	store.Backend = downBackend{}

	m := metrics.New("test")
	m.DatabaseUp.Set(1)

	err := NewScheduler(store, m, zerolog.Nop()).Snapshot(context.Background())
	assert.EqualError(t, err, "connection refused")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DatabaseUp))
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	s := NewScheduler(memstore.New(), metrics.New("test"), zerolog.Nop())
	assert.Error(t, s.Start("not a schedule"))
}

func TestStart_SnapshotsImmediately(t *testing.T) {
	m := metrics.New("test")
	s := NewScheduler(memstore.New(), m, zerolog.Nop())
	require.NoError(t, s.Start("@every 1h"))
	s.Stop(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseUp))
}
