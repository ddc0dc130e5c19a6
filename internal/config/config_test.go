package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseURL, cfg.Database.URL)
	assert.True(t, cfg.Database.UsingDefaultURL)
	assert.Equal(t, ":3030", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "mysql://user:secret@db:3306/users")
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "10")
	t.Setenv("DB_MAX_IDLE_CONNS", "2")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql://user:secret@db:3306/users", cfg.Database.URL)
	assert.False(t, cfg.Database.UsingDefaultURL)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("SERVER_IDLE_TIMEOUT", "forever")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
}

func TestValidate_ProductionRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "production")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL must be set in production")
}

func TestValidate_IdleGreaterThanOpen(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{URL: "memory://", MaxOpenConns: 1, MaxIdleConns: 5},
		CORS:     CORSConfig{AllowedOrigins: []string{"*"}},
	}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MAX_IDLE_CONNS")
}

func TestString_RedactsCredentials(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: ":3030"},
		Database: DatabaseConfig{URL: "postgres://admin:hunter2@db:5432/users"},
		App:      AppConfig{Environment: "staging"},
	}

	s := cfg.String()

	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, "postgres://[REDACTED]@db:5432/users")
}
