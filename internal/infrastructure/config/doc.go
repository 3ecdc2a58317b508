// Package config provides 12-factor configuration management for faleproxy.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: listen address, static asset directory, shutdown grace period
//   - Fetch: upstream timeout, User-Agent, body size limit, outbound rate limit, circuit breaker
//   - Rewrite: optional YAML/TOML replacement rules file
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - PORT, HOST, PUBLIC_DIR, SHUTDOWN_TIMEOUT
//   - FETCH_TIMEOUT, FETCH_USER_AGENT, FETCH_MAX_BODY_BYTES, FETCH_RATE_LIMIT, FETCH_BREAKER_ENABLED
//   - REWRITE_RULES_FILE
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
