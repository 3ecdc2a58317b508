// Package middleware provides the HTTP middleware stack for the proxy.
//
// Middleware stack includes:
//   - CORS: any origin may call POST /fetch (gin-contrib/cors)
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//   - Logger: one structured zap line per request
//   - Recovery: Panic recovery with a JSON 500 response
//
// Example Usage:
//
//	router.Use(middleware.Recovery(logger))
//	router.Use(middleware.Logger(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
