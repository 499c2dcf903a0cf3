package hashgeo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/hashgeo/model"
)

// Logger wraps slog.Logger with hashgeo-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithModules adds a module count field to the logger.
func (l *Logger) WithModules(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("modules", n),
	}
}

// WithHash adds a hash field to the logger.
func (l *Logger) WithHash(h model.Hash) *Logger {
	return &Logger{
		Logger: l.Logger.With("hash", uint32(h)),
	}
}

// LogBuild logs the construction of a hashed geometry.
func (l *Logger) LogBuild(ctx context.Context, modules int, precomputed bool, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "geometry hashing failed",
			"modules", modules,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "geometry hashed",
			"modules", modules,
			"precomputed", precomputed,
			"elapsed", elapsed,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op SnapshotOp, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot "+op.String()+" failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot "+op.String()+" completed",
			"name", name,
			"bytes", bytes,
		)
	}
}

// LogLookupRejected logs a lookup with an invalid hash.
func (l *Logger) LogLookupRejected(ctx context.Context, op LookupOp, err error) {
	l.DebugContext(ctx, op.String()+" lookup rejected",
		"error", err,
	)
}

// LogMismatch logs a failed geometry verification.
func (l *Logger) LogMismatch(ctx context.Context, err error) {
	l.WarnContext(ctx, "geometry verification failed",
		"error", err,
	)
}
