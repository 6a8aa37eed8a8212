package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VENUEOPS_API_KEY_MASTER", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), cfg.Marketing.CutoverDate)
	assert.Equal(t, []string{"smart campaign"}, cfg.Marketing.NonRevenueCampaignPrefixes)
	assert.Equal(t, 0.01, cfg.Marketing.CostLeftoverThreshold)
	assert.Equal(t, 0.005, cfg.Marketing.ShortfallDiscardThreshold)
	assert.True(t, cfg.Marketing.CacheEnabled)
	assert.Equal(t, 15*time.Minute, cfg.Marketing.CacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VENUEOPS_API_KEY_MASTER", "test-key")
	t.Setenv("VENUEOPS_HTTP_ADDR", ":9090")
	t.Setenv("VENUEOPS_ENV", "production")
	t.Setenv("VENUEOPS_RATE_LIMIT_RPS", "250.5")
	t.Setenv("VENUEOPS_MARKETING_CUTOVER_DATE", "2025-06-01")
	t.Setenv("VENUEOPS_MARKETING_NON_REVENUE_PREFIXES", "smart campaign, performance max")
	t.Setenv("VENUEOPS_MARKETING_CACHE_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 250.5, cfg.RateLimit.RPS)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), cfg.Marketing.CutoverDate)
	assert.Equal(t, []string{"smart campaign", "performance max"}, cfg.Marketing.NonRevenueCampaignPrefixes)
	assert.False(t, cfg.Marketing.CacheEnabled)
}

func TestLoadRequiresMasterKeyWhenAuthEnabled(t *testing.T) {
	t.Setenv("VENUEOPS_AUTH_ENABLED", "true")
	t.Setenv("VENUEOPS_API_KEY_MASTER", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadAuthDisabledSkipsMasterKey(t *testing.T) {
	t.Setenv("VENUEOPS_AUTH_ENABLED", "false")
	t.Setenv("VENUEOPS_API_KEY_MASTER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Auth.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p",
		DBName: "venueops", SSLMode: "require",
	}
	assert.Equal(t, "postgres://u:p@db:5433/venueops?sslmode=require", d.DSN())
}

func TestInvalidEnvValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("VENUEOPS_API_KEY_MASTER", "test-key")
	t.Setenv("VENUEOPS_DB_PORT", "not-a-port")
	t.Setenv("VENUEOPS_MARKETING_CUTOVER_DATE", "28/02/2026")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), cfg.Marketing.CutoverDate)
}
