// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON
// logging with configurable log levels. Request-scoped loggers and trace IDs are
// carried on the context so that handlers and services log with the same
// correlation data.
package logger
