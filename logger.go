package addrtrie

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with addrtrie-specific helpers.
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

// WithTokenCount adds a token count field to the logger.
func (l *Logger) WithTokenCount(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("tokens", n),
	}
}

// LogDecode logs a blob decode, successful or not.
func (l *Logger) LogDecode(ctx context.Context, size int, cached bool, err error) {
	if err != nil {
		l.DebugContext(ctx, "trie decode failed",
			"blob_bytes", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "trie decoded",
			"blob_bytes", size,
			"cached", cached,
		)
	}
}

// LogResolve logs a resolution attempt.
func (l *Logger) LogResolve(ctx context.Context, tokens int, status string, uprn uint64) {
	l.DebugContext(ctx, "resolve completed",
		"tokens", tokens,
		"status", status,
		"uprn", uprn,
	)
}

// LogCandidates logs a candidate enumeration.
func (l *Logger) LogCandidates(ctx context.Context, tokens, found int, status string) {
	l.DebugContext(ctx, "candidates enumerated",
		"tokens", tokens,
		"found", found,
		"status", status,
	)
}

// LogPeel logs a trailing-token peel.
func (l *Logger) LogPeel(ctx context.Context, before, after int) {
	l.DebugContext(ctx, "peel completed",
		"tokens_before", before,
		"tokens_after", after,
	)
}
