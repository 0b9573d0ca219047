package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inEmptyDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_FromEnvironment(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("FITTRACK_SECURITY_JWTSECRET", "s3cret")
	t.Setenv("FITTRACK_DATABASE_DRIVER", "memory")
	t.Setenv("FITTRACK_HTTP_PORT", "9090")
	t.Setenv("FITTRACK_LOGIN_WINDOW", "5m")
	t.Setenv("FITTRACK_ADMIN_EMAIL", "root@example.com")
	t.Setenv("FITTRACK_ADMIN_FORCEPASSWORDRESET", "true")
	t.Setenv("FITTRACK_ALLOWORIGINS", "https://a.example,https://b.example")
	t.Setenv("FITTRACK_JOBS_CATALOGSCHEDULE", "@every 5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Security.JWTSecret)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.Login.Window)
	assert.Equal(t, 5, cfg.Login.MaxAttempts)
	assert.Equal(t, 168*time.Hour, cfg.Security.JWTTTL)
	assert.Equal(t, "root@example.com", cfg.Admin.Email)
	assert.True(t, cfg.Admin.ForcePasswordReset)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
	assert.Equal(t, 30*time.Second, cfg.Database.ConnectRetry)
	assert.True(t, cfg.Jobs.Enabled)
	assert.Equal(t, "@every 5m", cfg.Jobs.CatalogSchedule)
}

func TestLoad_DotEnvFile(t *testing.T) {
	inEmptyDir(t)
	require.NoError(t, os.WriteFile(".env", []byte("FITTRACK_SECURITY_JWTSECRET=from-file\nFITTRACK_DATABASE_DRIVER=memory\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("FITTRACK_SECURITY_JWTSECRET")
		os.Unsetenv("FITTRACK_DATABASE_DRIVER")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Security.JWTSecret)
}

func TestValidate(t *testing.T) {
	valid := func() AppConfig {
		return AppConfig{
			Database: DatabaseConfig{Driver: DriverMemory},
			Security: SecurityConfig{JWTSecret: "x"},
			Login:    LoginConfig{MaxAttempts: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "memory ok", mutate: func(*AppConfig) {}},
		{name: "missing secret", mutate: func(c *AppConfig) { c.Security.JWTSecret = " " }, wantErr: "jwtsecret"},
		{name: "unknown driver", mutate: func(c *AppConfig) { c.Database.Driver = "sqlite" }, wantErr: "unknown database.driver"},
		{name: "postgres needs dsn", mutate: func(c *AppConfig) { c.Database.Driver = DriverPostgres }, wantErr: "postgres.dsn"},
		{name: "mongo needs uri", mutate: func(c *AppConfig) { c.Database.Driver = DriverMongo }, wantErr: "mongo.uri"},
		{name: "attempts", mutate: func(c *AppConfig) { c.Login.MaxAttempts = 0 }, wantErr: "maxattempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
