package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/models"
)

type countingLimiter struct {
	mu       sync.Mutex
	max      int
	failures map[string]int
}

func newCountingLimiter(limit int) *countingLimiter {
	return &countingLimiter{max: limit, failures: make(map[string]int)}
}

func (l *countingLimiter) Allow(_ context.Context, email string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures[email] < l.max, nil
}

func (l *countingLimiter) Fail(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[email]++
	return nil
}

func (l *countingLimiter) Reset(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, email)
	return nil
}

func register(t *testing.T, f *fixture, name, email string) AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return res
}

func TestRegister_IssuesTokenForNewUser(t *testing.T) {
	f := newFixture(t)

	res, err := f.auth.Register(context.Background(), RegisterInput{
		Name:     "  Alice ",
		Email:    " Alice@Example.COM ",
		Password: "password123",
		Goals:    "run a marathon",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", res.User.Name)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.Equal(t, models.UserRoleUser, res.User.Role)
	assert.False(t, res.User.JoinDate.IsZero())
	assert.NotEqual(t, "password123", string(res.User.PasswordHash))

	claims, err := f.tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		wantMsg string
	}{
		{
			name:    "short name",
			input:   RegisterInput{Name: "A", Email: "a@example.com", Password: "password123"},
			wantMsg: "Name must be at least 2 characters",
		},
		{
			name:    "bad email",
			input:   RegisterInput{Name: "Alice", Email: "alice@example", Password: "password123"},
			wantMsg: "Please enter a valid email address",
		},
		{
			name:    "short password",
			input:   RegisterInput{Name: "Alice", Email: "a@example.com", Password: "short"},
			wantMsg: "Password must be at least 8 characters",
		},
		{
			name:    "long goals",
			input:   RegisterInput{Name: "Alice", Email: "a@example.com", Password: "password123", Goals: strings.Repeat("g", 501)},
			wantMsg: "Goals must be less than 500 characters",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.auth.Register(context.Background(), tt.input)
			require.ErrorIs(t, err, ErrValidation)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	register(t, f, "Alice", "alice@example.com")

	_, err := f.auth.Register(context.Background(), RegisterInput{
		Name:     "Other",
		Email:    "ALICE@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "User already exists with this email")
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered := register(t, f, "Alice", "alice@example.com")

	res, err := f.auth.Login(ctx, LoginInput{Email: "Alice@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)

	_, err = f.auth.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.EqualError(t, err, "Invalid email or password")

	_, err = f.auth.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, LoginInput{Email: "alice@example.com"})
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Please provide email and password")
}

func TestLogin_LimiterLocksOutAndResets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	register(t, f, "Alice", "alice@example.com")

	limiter := newCountingLimiter(2)
	f.auth = NewAuthService(f.store.Users, f.hasher, f.tokens, limiter, zerolog.Nop())

	for i := 0; i < 2; i++ {
		_, err := f.auth.Login(ctx, LoginInput{Email: "alice@example.com", Password: "nope-nope"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := f.auth.Login(ctx, LoginInput{Email: "alice@example.com", Password: "password123"})
	require.ErrorIs(t, err, ErrTooManyAttempts)
	assert.EqualError(t, err, "Too many failed login attempts. Please try again later.")

	require.NoError(t, limiter.Reset(ctx, "alice@example.com"))
	_, err = f.auth.Login(ctx, LoginInput{Email: "alice@example.com", Password: "nope-nope"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, LoginInput{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Zero(t, limiter.failures["alice@example.com"])
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := register(t, f, "Alice", "alice@example.com")

	user, err := f.auth.Me(ctx, AuthenticatedAs(res.User))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = f.auth.Me(ctx, Anonymous())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.auth.Me(ctx, AuthenticatedAs(models.User{ID: "gone"}))
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "User not found")
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := register(t, f, "Alice", "alice@example.com")
	register(t, f, "Bob", "bob@example.com")
	req := AuthenticatedAs(alice.User)

	_, err := f.auth.UpdateProfile(ctx, req, ProfileInput{Email: ptr("BOB@example.com")})
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Email is already in use")

	_, err = f.auth.UpdateProfile(ctx, req, ProfileInput{Password: ptr("short")})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := f.auth.UpdateProfile(ctx, req, ProfileInput{
		Goals:    ptr("  get stronger "),
		Email:    ptr("alice@example.com"),
		Password: ptr("new-password"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "get stronger", updated.Goals)

	_, err = f.auth.Login(ctx, LoginInput{Email: "alice@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, LoginInput{Email: "alice@example.com", Password: "new-password"})
	assert.NoError(t, err)
}
