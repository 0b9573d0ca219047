package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/client"
	"fittrack/api/internal/config"
	"fittrack/api/internal/handlers"
	"fittrack/api/internal/repository/memstore"
	"fittrack/api/internal/server"
)

type harness struct {
	t       *testing.T
	url     string
	session string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Environment: "test",
		Database:    config.DatabaseConfig{Driver: config.DriverMemory},
		Security:    config.SecurityConfig{JWTSecret: "cli-secret", JWTTTL: time.Hour},
		Login:       config.LoginConfig{MaxAttempts: 5},
	}
	log := zerolog.Nop()
	srv := httptest.NewServer(server.NewEngine(cfg, log, handlers.NewHandlerSet(log, memstore.New(), nil, cfg)))
	t.Cleanup(srv.Close)

	return &harness{t: t, url: srv.URL, session: filepath.Join(t.TempDir(), "session.json")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	full := append([]string{"-api", h.url, "-session", h.session}, args...)
	err := run(context.Background(), full, &out)
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func TestCLI_SessionPersistsAcrossInvocations(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("register", "-name", "Alice", "-email", "alice@example.com", "-password", "password123")
	assert.Contains(t, out, "registered and logged in as Alice <alice@example.com>")

	saved, err := client.NewFileSessionStore(h.session).Load()
	require.NoError(t, err)
	assert.True(t, saved.LoggedIn())

	out = h.mustRun("whoami")
	assert.Contains(t, out, "alice@example.com")

	h.mustRun("logout")
	_, err = h.run("whoami")
	assert.EqualError(t, err, "not logged in; run fitctl login")

	out = h.mustRun("login", "-email", "alice@example.com", "-password", "password123")
	assert.Contains(t, out, "logged in as Alice (user)")
}

func TestCLI_CatalogAndProgress(t *testing.T) {
	h := newHarness(t)
	h.mustRun("register", "-name", "Alice", "-email", "alice@example.com", "-password", "password123")

	out := h.mustRun("exercises", "add", "-name", "Push-up", "-category", "strength", "-difficulty", "beginner", "-muscles", "chest, triceps")
	assert.Contains(t, out, "created exercise Push-up")

	out = h.mustRun("exercises")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "MARK"))
	assert.Contains(t, lines[1], "MINE")
	assert.Contains(t, lines[1], "edit,rm")

	_, err := h.run("workouts", "add", "-name", "Broken", "-category", "strength", "-difficulty", "beginner", "-duration", "30", "-exercises", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")

	out = h.mustRun("log", "-name", "Morning run", "-date", "2024-03-01", "-duration", "30", "-calories", "250")
	assert.Contains(t, out, "logged Morning run on 2024-03-01 (30 min, 250 kcal)")

	out = h.mustRun("history")
	assert.Contains(t, out, "Morning run")

	out = h.mustRun("stats")
	assert.Contains(t, out, "workouts")
	assert.Contains(t, out, "250")
}

func TestCLI_PasswordChangeClearsSession(t *testing.T) {
	h := newHarness(t)
	h.mustRun("register", "-name", "Alice", "-email", "alice@example.com", "-password", "password123")

	out := h.mustRun("profile", "-password", "new-password")
	assert.Contains(t, out, "password changed; log in again")

	saved, err := client.NewFileSessionStore(h.session).Load()
	require.NoError(t, err)
	assert.False(t, saved.LoggedIn())
}

func TestCLI_UnknownCommand(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("dance")
	assert.EqualError(t, err, `unknown command "dance"`)
	assert.Contains(t, out, "usage: fitctl")
}
