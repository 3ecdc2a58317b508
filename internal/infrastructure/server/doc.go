// Package server wires configuration, the rewrite pipeline and the Gin
// router into a runnable HTTP server.
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger (production or development)
//  3. Load rewrite rules and build the fetch client
//  4. Setup middleware (recovery, request ID, tracing, metrics, logging, CORS, rate limit)
//  5. Register routes and wrap the router with gzip compression
//  6. Serve until the context is cancelled
//  7. Drain in-flight requests within SHUTDOWN_TIMEOUT
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger, err := server.NewLogger(cfg.Logging)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.NewServer(cfg, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//	err = srv.Run(ctx)
package server
