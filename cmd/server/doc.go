// Package main is the entry point for the Faleproxy server.
//
// Faleproxy fetches a web page on request and returns it with every
// occurrence of "Yale" rewritten to "Fale" in visible text and the title,
// preserving case. Markup, attributes and URLs pass through untouched.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Serve the UI and POST /fetch on :3001
//	./faleproxy
//
//	# Development mode (colored logs, debug level)
//	./faleproxy serve --dev --port 8080
//
//	# Rewrite a single page and print the JSON result
//	./faleproxy rewrite https://www.yale.edu/
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
