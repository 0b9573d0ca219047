package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/models"
)

func progressInput(name, date string, duration, calories int) ProgressInput {
	return ProgressInput{
		WorkoutName:    &name,
		Date:           &date,
		Duration:       &duration,
		CaloriesBurned: &calories,
	}
}

func TestProgressStats_SingleCompletedLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", models.UserRoleUser)

	view, err := f.progress.Create(ctx, alice, progressInput("Morning run", "2025-03-01", 30, 200))
	require.NoError(t, err)
	assert.True(t, view.Log.Completed)

	stats, err := f.progress.Stats(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{
		TotalWorkouts:             1,
		TotalMinutes:              30,
		TotalCalories:             200,
		AverageCaloriesPerWorkout: 200,
	}, stats)
}

func TestProgressStats_IgnoresIncompleteAndOtherUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", models.UserRoleUser)
	bob := f.user(t, "bob", models.UserRoleUser)

	stats, err := f.progress.Stats(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{}, stats)

	inProgress := progressInput("Half done", "2025-03-02", 10, 50)
	inProgress.Completed = ptr(false)
	_, err = f.progress.Create(ctx, alice, inProgress)
	require.NoError(t, err)
	_, err = f.progress.Create(ctx, bob, progressInput("Bob ride", "2025-03-02", 60, 600))
	require.NoError(t, err)

	stats, err = f.progress.Stats(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalWorkouts)
	assert.Equal(t, 0, stats.AverageCaloriesPerWorkout)
}

func TestComputeStats_Rounding(t *testing.T) {
	tests := []struct {
		name     string
		calories []int
		want     int
	}{
		{name: "none", calories: nil, want: 0},
		{name: "exact", calories: []int{100, 300}, want: 200},
		{name: "half rounds up", calories: []int{100, 101}, want: 101},
		{name: "below half rounds down", calories: []int{100, 100, 101}, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := make([]models.ProgressLog, 0, len(tt.calories))
			for _, c := range tt.calories {
				logs = append(logs, models.ProgressLog{CaloriesBurned: c, Duration: 10, Completed: true})
			}
			logs = append(logs, models.ProgressLog{CaloriesBurned: 9999, Completed: false})

			stats := ComputeStats(logs)
			assert.Equal(t, len(tt.calories), stats.TotalWorkouts)
			assert.Equal(t, tt.want, stats.AverageCaloriesPerWorkout)
		})
	}
}

func TestProgressCreate_RequiredFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", models.UserRoleUser)

	missing := progressInput("Run", "2025-03-01", 30, 200)
	missing.CaloriesBurned = nil
	_, err := f.progress.Create(ctx, alice, missing)
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Please provide workoutName, date, duration, and caloriesBurned")

	_, err = f.progress.Create(ctx, alice, progressInput("Run", "yesterday", 30, 200))
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Invalid date")

	_, err = f.progress.Create(ctx, alice, progressInput("Run", "2025-03-01", -1, 200))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.progress.Create(ctx, Anonymous(), progressInput("Run", "2025-03-01", 30, 200))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestProgress_OwnershipIsForbiddenNotHidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", models.UserRoleUser)
	bob := f.user(t, "bob", models.UserRoleUser)

	view, err := f.progress.Create(ctx, alice, progressInput("Run", "2025-03-01T07:30:00Z", 30, 200))
	require.NoError(t, err)
	id := view.Log.ID

	_, err = f.progress.Get(ctx, bob, id)
	require.ErrorIs(t, err, ErrForbidden)
	assert.EqualError(t, err, "Not authorized to view this progress log")

	_, err = f.progress.Update(ctx, bob, id, ProgressInput{Notes: ptr("mine now")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, f.progress.Delete(ctx, bob, id), ErrForbidden)

	_, err = f.progress.Get(ctx, bob, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Progress log not found")

	updated, err := f.progress.Update(ctx, alice, id, ProgressInput{Notes: ptr("felt good"), Duration: ptr(35)})
	require.NoError(t, err)
	assert.Equal(t, "felt good", updated.Log.Notes)
	assert.Equal(t, 35, updated.Log.Duration)
	assert.Equal(t, "Run", updated.Log.WorkoutName)

	require.NoError(t, f.progress.Delete(ctx, alice, id))
	_, err = f.progress.Get(ctx, alice, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgressList_NewestDateFirstWithWorkoutSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin", models.UserRoleAdmin)
	alice := f.user(t, "alice", models.UserRoleUser)
	bob := f.user(t, "bob", models.UserRoleUser)

	shared, err := f.catalog.CreateDefaultWorkout(ctx, admin, workoutInput("Leg day"))
	require.NoError(t, err)
	bobs, err := f.catalog.CreateWorkout(ctx, bob, workoutInput("Bob's"))
	require.NoError(t, err)

	older := progressInput("Leg day", "2025-03-01", 45, 300)
	older.WorkoutID = ptr(shared.Workout.Item.ID)
	newer := progressInput("Borrowed", "2025-03-05", 20, 100)
	newer.WorkoutID = ptr(bobs.Workout.Item.ID)
	adhoc := progressInput("Walk", "2025-03-03", 15, 60)

	for _, in := range []ProgressInput{older, newer, adhoc} {
		_, err := f.progress.Create(ctx, alice, in)
		require.NoError(t, err)
	}

	views, err := f.progress.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "Borrowed", views[0].Log.WorkoutName)
	assert.Nil(t, views[0].Workout, "another user's workout is not summarised")
	assert.Equal(t, "Walk", views[1].Log.WorkoutName)
	assert.Nil(t, views[1].Workout)
	assert.Equal(t, "Leg day", views[2].Log.WorkoutName)
	require.NotNil(t, views[2].Workout)
	assert.True(t, views[2].Workout.IsDefault)
	assert.Equal(t, models.CategoryStrength, views[2].Workout.Category)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), views[2].Log.Date)
}
