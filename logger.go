package schemata

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/schemata/value"
)

// Logger wraps slog.Logger with schemata-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, the handler of slog.Default() is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogDecodeFailure logs a field blob that failed to decode.
func (l *Logger) LogDecodeFailure(ctx context.Context, field string, typ value.Type, err error) {
	l.ErrorContext(ctx, "failed to deserialize field",
		"field", field,
		"type", typ.String(),
		"error", err,
	)
}
