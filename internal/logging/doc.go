// Package logging provides structured logging for the Sponsorhub client.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the client. Logging is silent by default so that
// command output stays clean; set SPONSORHUB_LOG_LEVEL to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (request/response traces, notification frames)
//   - Info: Normal operations (logins, submissions, reconnects)
//   - Warn: Non-fatal issues (degraded fetches, retries)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Contract submitted",
//	    zap.Int64("contract_id", 42),
//	    zap.String("idempotency_key", key),
//	)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
