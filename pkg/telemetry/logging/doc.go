// Package logging provides structured logging for the exporter.
//
// The package wraps log/slog with:
//   - JSON, text, and console output formats
//   - A runtime-adjustable level shared by derived loggers
//   - Context fields (request_id, file) added to every record
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger.Slog())
//
//	ctx := logging.WithRequestID(ctx, "req-123")
//	slog.InfoContext(ctx, "scrape completed") // includes request_id
package logging
