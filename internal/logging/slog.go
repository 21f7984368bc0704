package logging

import (
	"context"
	"log/slog"
)

// SlogLogger adapts *slog.Logger to the Logger interface. The server
// wraps a JSON handler on stdout, the CLI a text handler on stderr;
// both hand the wrapped logger to NewSlogLogger at startup.
type SlogLogger struct {
	base *slog.Logger
}

func NewSlogLogger(base *slog.Logger) *SlogLogger {
	return &SlogLogger{base: base}
}

// Debug is not part of the Logger interface; sync and storage internals
// use it directly when tracing a pass.
func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.base.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.base.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.base.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.base.ErrorContext(ctx, msg, args...)
}

// With returns a child logger whose records always carry the given
// key-value pairs, e.g. a note id for the duration of a sync pass.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{base: s.base.With(args...)}
}
