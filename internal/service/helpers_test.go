package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/ids"
	"fittrack/api/internal/models"
	"fittrack/api/internal/repository"
	"fittrack/api/internal/repository/memstore"
	"fittrack/api/internal/security"
)

var fastArgon2 = security.Argon2Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 16, SaltLen: 8}

type fixture struct {
	store    repository.Store
	hasher   *security.PasswordHasher
	tokens   *security.TokenIssuer
	auth     *AuthService
	catalog  *CatalogService
	progress *ProgressService
}

// steppingClock returns strictly increasing instants so newest-first ordering
// is deterministic.
func steppingClock() func() time.Time {
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		at = at.Add(time.Second)
		return at
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	log := zerolog.Nop()
	clock := steppingClock()

	f := &fixture{
		store:  store,
		hasher: security.NewPasswordHasher(fastArgon2),
		tokens: security.NewTokenIssuer("test-secret", time.Hour),
	}
	f.auth = NewAuthService(store.Users, f.hasher, f.tokens, nil, log)
	f.catalog = NewCatalogService(store, log)
	f.progress = NewProgressService(store, log)
	f.auth.now = clock
	f.catalog.now = clock
	f.progress.now = clock
	return f
}

func (f *fixture) user(t *testing.T, name string, role models.UserRole) Requester {
	t.Helper()
	user := models.User{
		ID:    ids.New(),
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
	require.NoError(t, f.store.Users.Create(context.Background(), user))
	return AuthenticatedAs(user)
}

func (f *fixture) exercise(t *testing.T, req Requester, name string) string {
	t.Helper()
	entry, err := f.catalog.CreateExercise(context.Background(), req, exerciseInput(name))
	require.NoError(t, err)
	return entry.Item.ID
}

func (f *fixture) defaultExercise(t *testing.T, admin Requester, name string) string {
	t.Helper()
	entry, err := f.catalog.CreateDefaultExercise(context.Background(), admin, exerciseInput(name))
	require.NoError(t, err)
	return entry.Item.ID
}

func exerciseInput(name string) ExerciseInput {
	category := models.CategoryStrength
	difficulty := models.DifficultyBeginner
	return ExerciseInput{Name: &name, Category: &category, Difficulty: &difficulty}
}

func workoutInput(name string, exercises ...string) WorkoutInput {
	category := models.CategoryStrength
	difficulty := models.DifficultyIntermediate
	duration := 30
	return WorkoutInput{
		Name:       &name,
		Category:   &category,
		Difficulty: &difficulty,
		Duration:   &duration,
		Exercises:  exercises,
	}
}

func ptr[T any](v T) *T { return &v }
