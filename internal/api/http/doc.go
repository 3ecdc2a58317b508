// Package http provides the HTTP handlers for the proxy's REST surface.
//
// Endpoints:
//   - POST /fetch: rewrite a remote page; body is JSON or form-encoded with a url field
//   - GET /: the single-page UI from PUBLIC_DIR
//   - GET /health: liveness plus rule and circuit breaker details
//   - GET /stats: running totals as JSON
//
// Error responses are always {"error": message}: 400 for a missing or
// non-string url, 500 when the upstream page cannot be fetched.
//
// Example Usage:
//
//	handlers := http.NewHandlers(service, logger).WithMetrics(metrics)
//	router.POST("/fetch", handlers.Fetch)
//	router.GET("/health", handlers.Health)
package http
