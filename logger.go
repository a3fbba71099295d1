package bkgo

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bkgo-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses the default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// LogLoad logs a corpus load.
func (l *Logger) LogLoad(ctx context.Context, terms, skipped int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "corpus load failed", "error", err)
		return
	}
	l.InfoContext(ctx, "corpus loaded", "terms", terms, "skipped", skipped)
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, query string, maxDistance, results int) {
	l.DebugContext(ctx, "search completed",
		"query", query,
		"max_distance", maxDistance,
		"results", results,
	)
}

// LogSnapshot logs an artifact save/load.
func (l *Logger) LogSnapshot(ctx context.Context, filename string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed", "filename", filename, "error", err)
		return
	}
	l.InfoContext(ctx, "snapshot saved", "filename", filename)
}
