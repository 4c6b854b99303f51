package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "POLL_INTERVAL", "ASSIGNMENT_GUARD", "CORS_ORIGINS", "RATE_LIMIT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.False(t, cfg.AssignmentGuard)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 50, cfg.RateLimit)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("POLL_INTERVAL", "2s")
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")
	t.Setenv("ASSIGNMENT_GUARD", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("RATE_LIMIT", "-3")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 4*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.AssignmentGuard)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 50, cfg.RateLimit)
}

func TestInitDB(t *testing.T) {
	_, err := InitDB(&Config{DBDriver: "oracle"})
	assert.Error(t, err)

	_, err = InitDB(&Config{DBDriver: "mysql"})
	assert.Error(t, err)

	db, err := InitDB(&Config{DBDriver: "sqlite", DBDSN: "file:config_test?mode=memory&cache=shared"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialector.Name())
}
