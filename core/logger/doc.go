// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (console output for CLI runs, JSON for server mode) and integrates with the
// Fiber web framework when the exporter is started in serve mode.
//
// # Context Awareness
//
// The logger is context-aware regarding RayIDs (Request IDs). The WithRayID
// helper extracts the RayID from a Fiber context and attaches it to the log
// entry, so that all logs related to a specific export request can be
// correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (server) or console (CLI)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Export started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
