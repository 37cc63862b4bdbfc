package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join("testdata")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, 50, cfg.Server.RateLimit.MaxRequests)
	require.Equal(t, 30*time.Second, cfg.Server.RateLimit.Window)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.example.com", cfg.Database.Postgres.Host)
	require.Equal(t, 5433, cfg.Database.Postgres.Port)

	require.Equal(t, 2*time.Minute, cfg.Cache.DefaultTTL)
	require.True(t, cfg.Cache.Redis.Enabled)
	require.Equal(t, "redis.example.com:6380", cfg.Cache.Redis.Address)
	require.Equal(t, 3, cfg.Cache.Redis.DB)
	require.Equal(t, 750*time.Millisecond, cfg.Cache.Redis.Timeout)

	require.Equal(t, "jwt-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, "cowtracker-test", cfg.Auth.JWT.Issuer)
	require.Equal(t, 30*time.Minute, cfg.Auth.JWT.AccessTTL)
	require.Equal(t, 48*time.Hour, cfg.Auth.JWT.RefreshTTL)
	require.Equal(t, 20*time.Minute, cfg.Auth.Binding.Expiry)

	require.False(t, cfg.Monitoring.Prometheus.Enabled)
	require.Equal(t, "/internal/metrics", cfg.Monitoring.Prometheus.Endpoint)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, 100, cfg.Server.RateLimit.MaxRequests)
	require.Equal(t, time.Minute, cfg.Server.RateLimit.Window)

	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "./data/cowtracker.sqlite", cfg.Database.Path)

	require.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
	require.False(t, cfg.Cache.Redis.Enabled)
	require.Equal(t, 5*time.Second, cfg.Cache.Redis.Timeout)

	require.Equal(t, "cowtracker", cfg.Auth.JWT.Issuer)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWT.AccessTTL)
	require.Equal(t, 720*time.Hour, cfg.Auth.JWT.RefreshTTL)
	require.Equal(t, time.Hour, cfg.Auth.Binding.Expiry)
}

func TestDatabaseSettingsSelectsDriverBlock(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{
			Driver: "postgres",
			Postgres: DBAuthConfig{
				Host:     "pg.internal",
				Port:     5432,
				Database: "herd",
				Username: "app",
				Password: "secret",
			},
			MySQL: DBAuthConfig{Host: "ignored"},
		},
	}

	settings := cfg.DatabaseSettings()
	require.Equal(t, "postgres", settings.Driver)
	require.Equal(t, "pg.internal", settings.Host)
	require.Equal(t, 5432, settings.Port)
	require.Equal(t, "herd", settings.Name)
	require.Equal(t, "app", settings.User)
	require.Equal(t, "secret", settings.Password)

	cfg.Database.Driver = "mariadb"
	settings = cfg.DatabaseSettings()
	require.Equal(t, "ignored", settings.Host)
}
