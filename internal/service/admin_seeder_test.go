package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/config"
	"fittrack/api/internal/models"
)

func TestAdminSeeder_CreatesAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seeder := NewAdminSeeder(f.store.Users, f.hasher, config.AdminConfig{
		Email:    "Root@Example.com",
		Password: "admin-password",
		Name:     "Root",
	}, zerolog.Nop())

	require.NoError(t, seeder.Ensure(ctx))

	user, err := f.store.Users.FindByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, user.Role)
	assert.Equal(t, "System administrator account", user.Goals)

	res, err := f.auth.Login(ctx, LoginInput{Email: "root@example.com", Password: "admin-password"})
	require.NoError(t, err)
	assert.True(t, AuthenticatedAs(res.User).IsAdmin())

	require.NoError(t, seeder.Ensure(ctx), "second run is a no-op")
}

func TestAdminSeeder_PromotesExistingUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	register(t, f, "Root", "root@example.com")

	cfg := config.AdminConfig{Email: "root@example.com", Password: "admin-password", Name: "Root"}
	require.NoError(t, NewAdminSeeder(f.store.Users, f.hasher, cfg, zerolog.Nop()).Ensure(ctx))

	user, err := f.store.Users.FindByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, user.Role)

	_, err = f.auth.Login(ctx, LoginInput{Email: "root@example.com", Password: "password123"})
	require.NoError(t, err, "password kept without a forced reset")

	cfg.ForcePasswordReset = true
	require.NoError(t, NewAdminSeeder(f.store.Users, f.hasher, cfg, zerolog.Nop()).Ensure(ctx))
	_, err = f.auth.Login(ctx, LoginInput{Email: "root@example.com", Password: "admin-password"})
	assert.NoError(t, err)
}

func TestAdminSeeder_SkipsIncompleteConfig(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seeder := NewAdminSeeder(f.store.Users, f.hasher, config.AdminConfig{Email: "root@example.com"}, zerolog.Nop())
	require.NoError(t, seeder.Ensure(ctx))

	_, err := f.store.Users.FindByEmail(ctx, "root@example.com")
	assert.Error(t, err)
}
