package logging

import (
	"context"
	"io"
	"log"
	"log/slog"
	"strings"
)

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// New builds a SlogLogger writing to w. format is "json" or "text"
// (anything else falls back to text); level is one of debug, info, warn, error.
func New(w io.Writer, level, format string) *SlogLogger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return NewSlogLogger(slog.New(h))
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

// Slog exposes the underlying *slog.Logger for libraries that want one.
func (s *SlogLogger) Slog() *slog.Logger {
	return s.l
}

// StdLogger returns a *log.Logger that writes through l at level, for
// libraries that only accept the standard logger.
func StdLogger(l Logger, level slog.Level) *log.Logger {
	if s, ok := l.(*SlogLogger); ok {
		return slog.NewLogLogger(s.l.Handler(), level)
	}
	return log.New(lineWriter{l: l, level: level}, "", 0)
}

type lineWriter struct {
	l     Logger
	level slog.Level
}

func (w lineWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	ctx := context.Background()
	switch {
	case w.level >= slog.LevelError:
		w.l.Error(ctx, msg)
	case w.level >= slog.LevelWarn:
		w.l.Warn(ctx, msg)
	case w.level >= slog.LevelInfo:
		w.l.Info(ctx, msg)
	default:
		w.l.Debug(ctx, msg)
	}
	return len(p), nil
}
