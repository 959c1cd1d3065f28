package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Source feed
	FeedBaseURL     string        `envconfig:"FEED_BASE_URL" default:"https://www.koreabaseball.com/ws"`
	ScheduleBaseURL string        `envconfig:"SCHEDULE_BASE_URL" default:"https://api-gw.sports.naver.com"`
	RankingURL      string        `envconfig:"RANKING_URL" default:"https://www.koreabaseball.com/Record/TeamRank/TeamRankDaily.aspx"`
	FeedTimeout     time.Duration `envconfig:"FEED_TIMEOUT" default:"30s"`

	// Document store
	StoreBackend string `envconfig:"STORE_BACKEND" default:"file"` // file | postgres
	DataDir      string `envconfig:"DATA_DIR" default:"./data"`
	MergePolicy  string `envconfig:"MERGE_POLICY" default:"replace"` // replace | preserve-note

	// Database (postgres backend)
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"kbo_calendar"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"kbo"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" default:""`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis (optional feed response cache)
	RedisHost     string `envconfig:"REDIS_HOST" default:""`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      int    `envconfig:"CACHE_TTL" default:"600"` // seconds

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Scheduler (daemon mode)
	EnableScheduler    bool   `envconfig:"ENABLE_SCHEDULER" default:"false"`
	NightlyRefreshCron string `envconfig:"NIGHTLY_REFRESH_CRON" default:"0 2 * * *"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case "file", "postgres":
	default:
		return fmt.Errorf("STORE_BACKEND must be \"file\" or \"postgres\", got %q", c.StoreBackend)
	}

	switch c.MergePolicy {
	case "replace", "preserve-note":
	default:
		return fmt.Errorf("MERGE_POLICY must be \"replace\" or \"preserve-note\", got %q", c.MergePolicy)
	}

	if c.StoreBackend == "postgres" && c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required for the postgres backend")
	}

	return nil
}

// CacheEnabled returns true if a Redis cache host is configured
func (c *Config) CacheEnabled() bool {
	return c.RedisHost != ""
}

// CacheTTLDuration returns the cache TTL as a duration
func (c *Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
