// Package logging provides structured logging for the WattBox client.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the library and CLI. Logging is silent by
// default so that library consumers and scripted CLI invocations see no
// unexpected output; set WATTBOX_LOG_LEVEL to enable it.
//
// # Log Levels
//
//   - Debug: request URLs, response sizes, debounce skips
//   - Info: device loads, outlet state changes, simulate-mode no-ops
//   - Warn: failed requests, reconciliation failures
//   - Error: fatal CLI errors
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("outlet state changed",
//	    zap.String("host", "192.168.1.50"),
//	    zap.String("outlet", "Amplifier [3]"),
//	    zap.Bool("on", true),
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
// All logging functions are safe for concurrent use.
package logging
