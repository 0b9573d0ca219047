package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/api"
	"fittrack/api/internal/config"
	"fittrack/api/internal/handlers"
	"fittrack/api/internal/repository/memstore"
	"fittrack/api/internal/security"
	"fittrack/api/internal/server"
	"fittrack/api/internal/service"
)

func newServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Environment: "test",
		Database:    config.DatabaseConfig{Driver: config.DriverMemory},
		Security:    config.SecurityConfig{JWTSecret: "client-secret", JWTTTL: time.Hour},
		Login:       config.LoginConfig{MaxAttempts: 5},
		Admin:       config.AdminConfig{Email: "admin@example.com", Password: "admin-password", Name: "Admin"},
	}
	store := memstore.New()
	log := zerolog.Nop()

	hasher := security.NewPasswordHasher(security.Argon2Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 16, SaltLen: 8})
	require.NoError(t, service.NewAdminSeeder(store.Users, hasher, cfg.Admin, log).Ensure(context.Background()))

	srv := httptest.NewServer(server.NewEngine(cfg, log, handlers.NewHandlerSet(log, store, nil, cfg)))
	t.Cleanup(srv.Close)
	return srv.URL
}

func ptr[T any](v T) *T { return &v }

func exerciseRequest(name string) api.ExerciseRequest {
	return api.ExerciseRequest{Name: ptr(name), Category: ptr("strength"), Difficulty: ptr("beginner")}
}

func TestClient_CatalogFlow(t *testing.T) {
	ctx := context.Background()
	url := newServer(t)

	admin := New(url, nil)
	_, err := admin.Login(ctx, "admin@example.com", "admin-password")
	require.NoError(t, err)
	require.True(t, admin.Session().IsAdmin())

	squat, err := admin.CreateDefaultExercise(ctx, exerciseRequest("Squat"))
	require.NoError(t, err)
	assert.True(t, squat.IsDefault)

	alice := New(url, nil)
	user, err := alice.Register(ctx, api.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, alice.Session().UserID())
	assert.False(t, alice.Session().IsAdmin())

	pushup, err := alice.CreateExercise(ctx, exerciseRequest("Push-up"))
	require.NoError(t, err)

	list, err := alice.ListExercises(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Squat", list[0].Name)
	assert.Equal(t, "DEFAULT", Marker(list[0], alice.Session()))
	assert.Equal(t, "MINE", Marker(list[1], alice.Session()))
	assert.Equal(t, Affordance{}, Affordances(list[0], alice.Session()))
	assert.Equal(t, Affordance{CanEdit: true, CanDelete: true}, Affordances(list[1], alice.Session()))

	workout, err := alice.CreateWorkout(ctx, api.WorkoutRequest{
		Name:      ptr("Mixed"),
		Duration:  ptr(25),
		Exercises: []string{squat.ID, pushup.ID},
	})
	require.NoError(t, err)
	require.Len(t, workout.Exercises, 2)
	assert.Equal(t, "Squat", workout.Exercises[0].Name)
	assert.Equal(t, "Push-up", workout.Exercises[1].Name)
	assert.Equal(t, "strength", workout.Category)

	err = admin.DeleteDefaultExercise(ctx, squat.ID)
	require.NoError(t, err, "user workouts do not pin default exercises")

	anon := New(url, nil)
	_, err = anon.CreateExercise(ctx, exerciseRequest("Nope"))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "No token provided. Authorization denied.", apiErr.Message)

	err = alice.DeleteExercise(ctx, "missing")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_ProgressAndPasswordChange(t *testing.T) {
	ctx := context.Background()
	url := newServer(t)

	c := New(url, nil)
	_, err := c.Register(ctx, api.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	logged, err := c.LogProgress(ctx, api.ProgressRequest{
		WorkoutName:    ptr("Run"),
		Date:           ptr("2025-03-01"),
		Duration:       ptr(30),
		CaloriesBurned: ptr(200),
	})
	require.NoError(t, err)
	assert.True(t, logged.Completed)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, api.Stats{TotalWorkouts: 1, TotalMinutes: 30, TotalCalories: 200, AverageCaloriesPerWorkout: 200}, stats)

	_, err = c.UpdateProfile(ctx, api.ProfileRequest{Password: ptr("new-password")})
	require.NoError(t, err)
	assert.False(t, c.Session().LoggedIn(), "password change forces a fresh login")

	_, err = c.Stats(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, err = c.Login(ctx, "alice@example.com", "new-password")
	require.NoError(t, err)
	logs, err := c.ListProgress(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Health(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestAffordances(t *testing.T) {
	owner := "u1"
	mine := api.Exercise{CreatedBy: &owner}
	shared := api.Workout{IsDefault: true, CreatedBy: &owner}

	user := &Session{Token: "t", User: &api.User{ID: "u1", Role: "user"}}
	other := &Session{Token: "t", User: &api.User{ID: "u2", Role: "user"}}
	admin := &Session{Token: "t", User: &api.User{ID: "a1", Role: "admin"}}

	tests := []struct {
		name    string
		entry   CatalogEntry
		session *Session
		want    bool
	}{
		{name: "owner", entry: mine, session: user, want: true},
		{name: "other user", entry: mine, session: other},
		{name: "admin on user entry", entry: mine, session: admin},
		{name: "admin on default", entry: shared, session: admin, want: true},
		{name: "creator of default without admin", entry: shared, session: user},
		{name: "logged out", entry: mine, session: &Session{}},
		{name: "nil session", entry: shared, session: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Affordances(tt.entry, tt.session)
			assert.Equal(t, Affordance{CanEdit: tt.want, CanDelete: tt.want}, got)
		})
	}
}

func TestFileSessionStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileSessionStore(path)

	s, err := store.Load()
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())

	saved := &Session{Token: "tok", User: &api.User{ID: "u1", Name: "Alice", Role: "admin"}}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.Token)
	assert.True(t, loaded.IsAdmin())

	loaded.Clear()
	require.NoError(t, store.Save(loaded))
	s, err = store.Load()
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())
	require.NoError(t, store.Clear())
}
