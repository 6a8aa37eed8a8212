package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the VenueOps application.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Metrics   MetricsConfig
	Marketing MarketingConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	Enabled   bool
	MasterKey string
	SkipPaths []string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// MarketingConfig holds the attribution-engine settings.
type MarketingConfig struct {
	// CutoverDate is the first date with trusted booking-level UTM
	// attribution; before it ad-platform performance is the truth source.
	CutoverDate time.Time
	// NonRevenueCampaignPrefixes lists campaign-name prefixes whose
	// reported conversion value is zeroed, case-insensitive.
	NonRevenueCampaignPrefixes []string
	// CostLeftoverThreshold is the minimum campaign/ad-group cost gap
	// attributed to the missing-medium bucket, in currency units.
	CostLeftoverThreshold float64
	// ShortfallDiscardThreshold is the maximum booking-count/revenue gap
	// treated as rounding noise.
	ShortfallDiscardThreshold float64
	// CacheEnabled turns the Redis ads-report cache on.
	CacheEnabled bool
	// CacheTTL bounds how long fetched ads reports are reused.
	CacheTTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("VENUEOPS_HTTP_ADDR", ":8080"),
			Env:             getEnv("VENUEOPS_ENV", "development"),
			ShutdownTimeout: getDurationEnv("VENUEOPS_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("VENUEOPS_DB_HOST", "localhost"),
			Port:     getIntEnv("VENUEOPS_DB_PORT", 5432),
			User:     getEnv("VENUEOPS_DB_USER", "venueops"),
			Password: getEnv("VENUEOPS_DB_PASSWORD", "venueops_secret"),
			DBName:   getEnv("VENUEOPS_DB_NAME", "venueops"),
			SSLMode:  getEnv("VENUEOPS_DB_SSLMODE", "disable"),
			MaxConns: getIntEnv("VENUEOPS_DB_MAX_CONNS", 25),
			MinConns: getIntEnv("VENUEOPS_DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("VENUEOPS_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("VENUEOPS_REDIS_PASSWORD", ""),
			DB:       getIntEnv("VENUEOPS_REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Enabled:   getBoolEnv("VENUEOPS_AUTH_ENABLED", true),
			MasterKey: getEnv("VENUEOPS_API_KEY_MASTER", ""),
			SkipPaths: getSliceEnv("VENUEOPS_AUTH_SKIP_PATHS", []string{"/health", "/metrics"}),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolEnv("VENUEOPS_RATE_LIMIT_ENABLED", true),
			RPS:     getFloatEnv("VENUEOPS_RATE_LIMIT_RPS", 100),
			Burst:   getIntEnv("VENUEOPS_RATE_LIMIT_BURST", 20),
		},
		Log: LogConfig{
			Level:  getEnv("VENUEOPS_LOG_LEVEL", "info"),
			Format: getEnv("VENUEOPS_LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("VENUEOPS_METRICS_ENABLED", true),
			Path:    getEnv("VENUEOPS_METRICS_PATH", "/metrics"),
		},
		Marketing: MarketingConfig{
			CutoverDate:                getDateEnv("VENUEOPS_MARKETING_CUTOVER_DATE", time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)),
			NonRevenueCampaignPrefixes: getSliceEnv("VENUEOPS_MARKETING_NON_REVENUE_PREFIXES", []string{"smart campaign"}),
			CostLeftoverThreshold:      getFloatEnv("VENUEOPS_MARKETING_COST_LEFTOVER_THRESHOLD", 0.01),
			ShortfallDiscardThreshold:  getFloatEnv("VENUEOPS_MARKETING_SHORTFALL_THRESHOLD", 0.005),
			CacheEnabled:               getBoolEnv("VENUEOPS_MARKETING_CACHE_ENABLED", true),
			CacheTTL:                   getDurationEnv("VENUEOPS_MARKETING_CACHE_TTL", 15*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.MasterKey == "" {
		return fmt.Errorf("VENUEOPS_API_KEY_MASTER is required when auth is enabled")
	}
	if c.Marketing.CutoverDate.IsZero() {
		return fmt.Errorf("VENUEOPS_MARKETING_CUTOVER_DATE must be a valid date")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Helper functions for reading environment variables

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getFloatEnv(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getDateEnv(key string, def time.Time) time.Time {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			return d
		}
	}
	return def
}

func getSliceEnv(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return def
}
