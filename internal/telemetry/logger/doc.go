// Package logger provides structured logging for tsmap tools.
//
// It wraps log/slog:
//
//   - logger.go: handler selection, level control and the default logger
//   - context.go: context-carried logger with run and worker IDs
//
// Durations are rendered as strings ("1.5ms") in both formats so that
// workload summaries stay readable in JSON.
package logger
