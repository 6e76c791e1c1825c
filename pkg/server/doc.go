// Package server provides the HTTP server exposing the exporter's metrics.
//
// # Routes
//
//	GET <metrics_path>   exposition text (default /metrics)
//	GET /health          {"status":"ok"} liveness probe
//	GET /ready           readiness checks, 503 when any fails
//
// Every route runs through the middleware chain in pkg/server/middleware:
// panic recovery, request logging, request IDs, and the X-Powered-By
// header.
//
// # Basic Usage
//
//	coordinator, err := scrape.FromConfig(cfg, collector, logger)
//	if err != nil {
//	    return err
//	}
//
//	srv := server.NewServer(&cfg.Server, coordinator, checker)
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// # Graceful Shutdown
//
// Start returns once ctx is cancelled and in-flight scrapes have finished,
// or the shutdown timeout has passed. Signal handling is left to the
// caller (see pkg/cli).
package server
