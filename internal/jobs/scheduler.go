package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"fittrack/api/internal/metrics"
	"fittrack/api/internal/repository"
)

const snapshotTimeout = 10 * time.Second

// Scheduler periodically snapshots catalog sizes and database reachability
// into the metrics registry.
type Scheduler struct {
	cron    *cron.Cron
	store   repository.Store
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewScheduler(store repository.Store, m *metrics.Metrics, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:    c,
		store:   store,
		metrics: m,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the snapshot job and takes one snapshot immediately so the
// gauges are populated before the first tick.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runSnapshot); err != nil {
		return err
	}
	s.runSnapshot()
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running job, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler stop timed out with a job still running")
	}
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()
	if err := s.Snapshot(ctx); err != nil {
		s.log.Error().Err(err).Msg("catalog snapshot failed")
	}
}

// Snapshot records the size of each catalog collection. An unreachable
// database zeroes database_up and leaves the previous counts in place.
func (s *Scheduler) Snapshot(ctx context.Context) error {
	if err := s.store.Backend.Ping(ctx); err != nil {
		s.metrics.DatabaseUp.Set(0)
		return err
	}
	s.metrics.DatabaseUp.Set(1)

	exerciseStores := map[string]repository.ExerciseStore{
		"exercises":         s.store.Exercises,
		"default_exercises": s.store.DefaultExercises,
	}
	for name, repo := range exerciseStores {
		list, err := repo.List(ctx)
		if err != nil {
			return err
		}
		s.metrics.CatalogEntries.WithLabelValues(name).Set(float64(len(list)))
	}

	workoutStores := map[string]repository.WorkoutStore{
		"workouts":         s.store.Workouts,
		"default_workouts": s.store.DefaultWorkouts,
	}
	for name, repo := range workoutStores {
		list, err := repo.List(ctx)
		if err != nil {
			return err
		}
		s.metrics.CatalogEntries.WithLabelValues(name).Set(float64(len(list)))
	}

	s.log.Debug().Msg("catalog snapshot recorded")
	return nil
}
