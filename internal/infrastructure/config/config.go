package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Rewrite   RewriteConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"3001"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	PublicDir       string        `envconfig:"PUBLIC_DIR" default:"public"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// FetchConfig holds outbound fetch settings.
type FetchConfig struct {
	Timeout        time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`
	UserAgent      string        `envconfig:"FETCH_USER_AGENT" default:"Mozilla/5.0 (Faleproxy)"`
	MaxBodyBytes   int64         `envconfig:"FETCH_MAX_BODY_BYTES" default:"10485760"`
	RateLimit      float64       `envconfig:"FETCH_RATE_LIMIT" default:"0"`
	BreakerEnabled bool          `envconfig:"FETCH_BREAKER_ENABLED" default:"false"`
}

// RewriteConfig selects the replacement rules. An empty RulesFile means
// the built-in Yale to Fale rule.
type RewriteConfig struct {
	RulesFile string `envconfig:"REWRITE_RULES_FILE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds per-IP inbound rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "3001",
			Host:            "0.0.0.0",
			PublicDir:       "public",
			ShutdownTimeout: 10 * time.Second,
		},
		Fetch: FetchConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Mozilla/5.0 (Faleproxy)",
			MaxBodyBytes: 10 * 1024 * 1024,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("invalid config: PORT must not be empty")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("invalid config: FETCH_TIMEOUT must be positive, got %s", c.Fetch.Timeout)
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid config: FETCH_MAX_BODY_BYTES must be positive, got %d", c.Fetch.MaxBodyBytes)
	}
	if c.Fetch.RateLimit < 0 {
		return fmt.Errorf("invalid config: FETCH_RATE_LIMIT must not be negative, got %g", c.Fetch.RateLimit)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}
	return nil
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
