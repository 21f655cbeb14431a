package logging

import (
	"context"

	"go.uber.org/zap"
)

// ZapLogger adapts a *zap.SugaredLogger to the Logger interface.
// The server uses it; the CLI sticks to the lighter slog implementation.
type ZapLogger struct {
	l *zap.SugaredLogger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{l: l.Sugar()}
}

func (z *ZapLogger) Info(ctx context.Context, msg string, args ...any) {
	z.l.Infow(msg, args...)
}

func (z *ZapLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.l.Warnw(msg, args...)
}

func (z *ZapLogger) Error(ctx context.Context, msg string, args ...any) {
	z.l.Errorw(msg, args...)
}

func (z *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{l: z.l.With(args...)}
}

// Sync flushes buffered log entries. Call before process exit.
func (z *ZapLogger) Sync() error {
	return z.l.Sync()
}
