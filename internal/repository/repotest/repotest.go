// Package repotest is a behavioural suite shared by every repository backend.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/ids"
	"fittrack/api/internal/models"
	"fittrack/api/internal/repository"
)

// Run exercises a backend. newStore must return an empty store each call.
func Run(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("exercises", func(t *testing.T) { testExercises(t, newStore(t)) })
	t.Run("workouts", func(t *testing.T) { testWorkouts(t, newStore(t)) })
	t.Run("progress", func(t *testing.T) { testProgress(t, newStore(t)) })
}

var base = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func testUsers(t *testing.T, store repository.Store) {
	ctx := context.Background()
	users := store.Users

	alice := models.User{
		ID:           ids.New(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: []byte("$argon2id$hash"),
		Role:         models.UserRoleUser,
		JoinDate:     at(0),
		CreatedAt:    at(0),
		UpdatedAt:    at(0),
	}
	require.NoError(t, users.Create(ctx, alice))

	dup := alice
	dup.ID = ids.New()
	assert.ErrorIs(t, users.Create(ctx, dup), repository.ErrDuplicate)

	found, err := users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)
	assert.Equal(t, alice.PasswordHash, found.PasswordHash)
	assert.Equal(t, models.UserRoleUser, found.Role)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = users.GetByID(ctx, ids.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	alice.Role = models.UserRoleAdmin
	alice.Goals = "lift"
	require.NoError(t, users.Update(ctx, alice))
	got, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, got.Role)
	assert.Equal(t, "lift", got.Goals)

	assert.ErrorIs(t, users.Update(ctx, models.User{ID: ids.New(), Email: "x@example.com"}), repository.ErrNotFound)
}

func exercise(name, owner string, minutes int) models.Exercise {
	sets := 3
	return models.Exercise{
		ID:            ids.New(),
		Name:          name,
		Category:      models.CategoryStrength,
		Difficulty:    models.DifficultyBeginner,
		TargetMuscles: []string{"legs"},
		Equipment:     []string{},
		Instructions:  []string{"stand", "squat"},
		Sets:          &sets,
		CreatedBy:     &owner,
		CreatedAt:     at(minutes),
		UpdatedAt:     at(minutes),
	}
}

func exerciseNames(list []models.Exercise) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.Name)
	}
	return out
}

func testExercises(t *testing.T, store repository.Store) {
	ctx := context.Background()
	repo := store.Exercises

	squat := exercise("Squat", "alice", 1)
	lunge := exercise("Lunge", "alice", 2)
	plank := exercise("Plank", "bob", 3)
	for _, e := range []models.Exercise{squat, lunge, plank} {
		require.NoError(t, repo.Create(ctx, e))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plank", "Lunge", "Squat"}, exerciseNames(all))

	mine, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lunge", "Squat"}, exerciseNames(mine))

	got, err := repo.GetByID(ctx, squat.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"stand", "squat"}, got.Instructions)
	require.NotNil(t, got.Sets)
	assert.Equal(t, 3, *got.Sets)
	assert.Nil(t, got.Reps)

	found, err := repo.FindByIDs(ctx, []string{plank.ID, "missing", squat.ID, plank.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Plank", "Squat"}, exerciseNames(found))

	none, err := store.DefaultExercises.FindByIDs(ctx, []string{squat.ID})
	require.NoError(t, err)
	assert.Empty(t, none, "collections are independent")

	squat.Name = "Back squat"
	squat.UpdatedAt = at(10)
	require.NoError(t, repo.Update(ctx, squat))
	got, err = repo.GetByID(ctx, squat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Back squat", got.Name)

	require.NoError(t, repo.Delete(ctx, lunge.ID))
	_, err = repo.GetByID(ctx, lunge.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, lunge.ID), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, lunge), repository.ErrNotFound)
}

func testWorkouts(t *testing.T, store repository.Store) {
	ctx := context.Background()
	repo := store.DefaultWorkouts

	legDay := models.Workout{
		ID:           ids.New(),
		Name:         "Leg day",
		Category:     models.CategoryStrength,
		Difficulty:   models.DifficultyIntermediate,
		Duration:     45,
		Exercises:    []string{"ex-2", "ex-1", "ex-2"},
		Instructions: []string{},
		CreatedAt:    at(1),
		UpdatedAt:    at(1),
	}
	require.NoError(t, repo.Create(ctx, legDay))

	got, err := repo.GetByID(ctx, legDay.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ex-2", "ex-1", "ex-2"}, got.Exercises, "order and duplicates survive")
	assert.Nil(t, got.CreatedBy)

	used, err := repo.ReferencesExercise(ctx, "ex-1")
	require.NoError(t, err)
	assert.True(t, used)
	used, err = repo.ReferencesExercise(ctx, "ex-3")
	require.NoError(t, err)
	assert.False(t, used)

	used, err = store.Workouts.ReferencesExercise(ctx, "ex-1")
	require.NoError(t, err)
	assert.False(t, used)

	legDay.Exercises = []string{}
	require.NoError(t, repo.Update(ctx, legDay))
	used, err = repo.ReferencesExercise(ctx, "ex-1")
	require.NoError(t, err)
	assert.False(t, used)

	owner := "alice"
	cardio := models.Workout{
		ID:           ids.New(),
		Name:         "Cardio",
		Category:     models.CategoryCardio,
		Difficulty:   models.DifficultyBeginner,
		Duration:     20,
		Exercises:    []string{},
		Instructions: []string{},
		CreatedBy:    &owner,
		CreatedAt:    at(2),
		UpdatedAt:    at(2),
	}
	require.NoError(t, store.Workouts.Create(ctx, cardio))
	mine, err := store.Workouts.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Cardio", mine[0].Name)

	require.NoError(t, store.Workouts.Delete(ctx, cardio.ID))
	mine, err = store.Workouts.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func testProgress(t *testing.T, store repository.Store) {
	ctx := context.Background()
	repo := store.Progress

	alice, bob := ids.New(), ids.New()
	for _, id := range []string{alice, bob} {
		require.NoError(t, store.Users.Create(ctx, models.User{
			ID:           id,
			Name:         id,
			Email:        id + "@example.com",
			PasswordHash: []byte("hash"),
			Role:         models.UserRoleUser,
			JoinDate:     at(0),
			CreatedAt:    at(0),
			UpdatedAt:    at(0),
		}))
	}

	workoutID := ids.New()
	logs := []models.ProgressLog{
		{ID: ids.New(), UserID: alice, WorkoutName: "Old", Date: at(0), Duration: 20, CaloriesBurned: 100, Completed: true},
		{ID: ids.New(), UserID: alice, WorkoutID: &workoutID, WorkoutName: "New", Date: at(60), Duration: 30, CaloriesBurned: 200, Completed: true},
		{ID: ids.New(), UserID: alice, WorkoutName: "Pending", Date: at(30), Duration: 5, Completed: false},
		{ID: ids.New(), UserID: bob, WorkoutName: "Bob", Date: at(90), Duration: 50, Completed: true},
	}
	for _, l := range logs {
		l.CreatedAt = at(0)
		l.UpdatedAt = at(0)
		require.NoError(t, repo.Create(ctx, l))
	}

	all, err := repo.ListByUser(ctx, alice, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "New", all[0].WorkoutName)
	assert.Equal(t, "Pending", all[1].WorkoutName)
	assert.Equal(t, "Old", all[2].WorkoutName)
	require.NotNil(t, all[0].WorkoutID)
	assert.Equal(t, workoutID, *all[0].WorkoutID)
	assert.Nil(t, all[2].WorkoutID)

	completed, err := repo.ListByUser(ctx, alice, true)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	old := logs[0]
	old.Notes = "sore"
	old.CreatedAt = at(0)
	old.UpdatedAt = at(5)
	require.NoError(t, repo.Update(ctx, old))
	got, err := repo.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, "sore", got.Notes)
	assert.True(t, got.Date.Equal(at(0)))

	require.NoError(t, repo.Delete(ctx, old.ID))
	_, err = repo.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
