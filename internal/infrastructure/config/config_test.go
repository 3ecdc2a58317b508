package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "public", cfg.Server.PublicDir)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	// Fetch config
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "Mozilla/5.0 (Faleproxy)", cfg.Fetch.UserAgent)
	assert.Equal(t, int64(10485760), cfg.Fetch.MaxBodyBytes)
	assert.Zero(t, cfg.Fetch.RateLimit)
	assert.False(t, cfg.Fetch.BreakerEnabled)

	// Rewrite config
	assert.Empty(t, cfg.Rewrite.RulesFile)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                  "9000",
		"HOST":                  "127.0.0.1",
		"PUBLIC_DIR":            "/srv/www",
		"SHUTDOWN_TIMEOUT":      "3s",
		"FETCH_TIMEOUT":         "5s",
		"FETCH_USER_AGENT":      "test-agent",
		"FETCH_MAX_BODY_BYTES":  "1024",
		"FETCH_RATE_LIMIT":      "2.5",
		"FETCH_BREAKER_ENABLED": "true",
		"REWRITE_RULES_FILE":    "rules.yaml",
		"LOG_LEVEL":             "debug",
		"LOG_DEV":               "true",
		"RATE_LIMIT_RPS":        "500",
		"RATE_LIMIT_BURST":      "1000",
		"RATE_LIMIT_ENABLED":    "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, "/srv/www", cfg.Server.PublicDir)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "test-agent", cfg.Fetch.UserAgent)
	assert.Equal(t, int64(1024), cfg.Fetch.MaxBodyBytes)
	assert.Equal(t, 2.5, cfg.Fetch.RateLimit)
	assert.True(t, cfg.Fetch.BreakerEnabled)

	assert.Equal(t, "rules.yaml", cfg.Rewrite.RulesFile)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Overridden
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Defaults still apply
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparseable timeout", "FETCH_TIMEOUT", "soon"},
		{"zero timeout", "FETCH_TIMEOUT", "0s"},
		{"negative body limit", "FETCH_MAX_BODY_BYTES", "-1"},
		{"negative fetch rate", "FETCH_RATE_LIMIT", "-3"},
		{"non-boolean breaker flag", "FETCH_BREAKER_ENABLED", "maybe"},
		{"zero inbound rps", "RATE_LIMIT_RPS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestFetchTimeoutConfig(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"default", "", 30 * time.Second},
		{"seconds", "15s", 15 * time.Second},
		{"milliseconds", "750ms", 750 * time.Millisecond},
		{"minutes", "2m", 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("FETCH_TIMEOUT", tt.value)
			}

			cfg, err := Load()

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Fetch.Timeout)
		})
	}
}

func TestRateLimitConfig(t *testing.T) {
	tests := []struct {
		name        string
		rps         string
		burst       string
		enabled     string
		wantRPS     int
		wantBurst   int
		wantEnabled bool
	}{
		{
			name:        "default values",
			wantRPS:     100,
			wantBurst:   200,
			wantEnabled: true,
		},
		{
			name:        "high limits",
			rps:         "1000",
			burst:       "2000",
			wantRPS:     1000,
			wantBurst:   2000,
			wantEnabled: true,
		},
		{
			name:        "disabled ignores zero limits",
			rps:         "0",
			enabled:     "false",
			wantRPS:     0,
			wantBurst:   200,
			wantEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.rps != "" {
				t.Setenv("RATE_LIMIT_RPS", tt.rps)
			}
			if tt.burst != "" {
				t.Setenv("RATE_LIMIT_BURST", tt.burst)
			}
			if tt.enabled != "" {
				t.Setenv("RATE_LIMIT_ENABLED", tt.enabled)
			}

			cfg, err := Load()
			require.NoError(t, err)

			assert.Equal(t, tt.wantRPS, cfg.RateLimit.RequestsPerSecond)
			assert.Equal(t, tt.wantBurst, cfg.RateLimit.Burst)
			assert.Equal(t, tt.wantEnabled, cfg.RateLimit.Enabled)
		})
	}
}
