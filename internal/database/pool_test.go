package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/api/internal/config"
)

func TestPoolConfig(t *testing.T) {
	pc, err := poolConfig(config.PostgresConfig{
		DSN:             "postgres://fit:pw@localhost:5432/fittrack",
		MaxOpen:         8,
		MaxIdle:         20,
		ConnMaxLifetime: 5 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(8), pc.MinConns, "idle floor is capped by the pool size")
	assert.Equal(t, 5*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, "fittrack-api", pc.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_KeepsExplicitApplicationName(t *testing.T) {
	pc, err := poolConfig(config.PostgresConfig{DSN: "postgres://localhost/fittrack?application_name=reporting"})
	require.NoError(t, err)
	assert.Equal(t, "reporting", pc.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_BadDSN(t *testing.T) {
	_, err := poolConfig(config.PostgresConfig{DSN: "postgres://%zz"})
	assert.ErrorContains(t, err, "parse dsn")
}
