package molfeat

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with molfeat-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDataset adds a dataset field to the logger.
func (l *Logger) WithDataset(dataset string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dataset", dataset),
	}
}

// WithVariant adds a variant field to the logger.
func (l *Logger) WithVariant(variant string) *Logger {
	return &Logger{
		Logger: l.Logger.With("variant", variant),
	}
}

// WithCount adds a molecule count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogScan logs the scan phase of a batch.
func (l *Logger) LogScan(ctx context.Context, count, maxAtoms int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "scan failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "scan completed",
			"count", count,
			"max_atoms", maxAtoms,
		)
	}
}

// LogRepresent logs a batch representation.
func (l *Logger) LogRepresent(ctx context.Context, variant string, count, width int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "represent failed",
			"variant", variant,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "represent completed",
			"variant", variant,
			"count", count,
			"width", width,
			"duration", duration,
		)
	}
}

// LogWrite logs a table write.
func (l *Logger) LogWrite(ctx context.Context, object string, rows, cols int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"object", object,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "write completed",
			"object", object,
			"rows", rows,
			"cols", cols,
		)
	}
}
