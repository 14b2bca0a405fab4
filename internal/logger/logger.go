package logger

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger owns the handler outputs for one process. Close flushes and
// releases the rotated log file, if any.
type Logger struct {
	*slog.Logger
	file *lumberjack.Logger
}

// New builds a logger writing to w and, when cfg.Dir is set, to a rotated
// file in that directory as well.
func New(cfg Config, w io.Writer) *Logger {
	l := &Logger{}
	out := w
	if cfg.Dir != "" {
		l.file = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, LogFileName),
			MaxSize:    LogFileMaxSizeMB,
			MaxBackups: LogFileMaxBackups,
			MaxAge:     LogFileMaxAgeDays,
		}
		out = io.MultiWriter(w, l.file)
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	handler = handler.WithAttrs(cfg.BaseAttributes())

	l.Logger = slog.New(handler)
	return l
}

// Close releases the log file. It is safe to call on a logger without one.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type ctxKey string

const runIDKey ctxKey = "runID"

// GenerateRunID creates a new UUID identifying one invocation.
func GenerateRunID() string {
	return uuid.NewString()
}

// WithRunID returns a new context containing the run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run ID from the context, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// FromContext decorates base with the run_id attribute when present.
func FromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	if id, ok := RunIDFromContext(ctx); ok {
		return base.With(AttrKeyRunID, id)
	}
	return base
}
