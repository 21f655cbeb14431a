// Package logging defines the structured logger the rest of the project is
// written against, plus slog and zap backed implementations. The client uses
// slog, the server uses zap; everything in between only sees the interface.
package logging

import "context"

// Logger logs structured messages. The trailing args are key/value pairs:
//
//	log.Info(ctx, "login ok", "nickname", nickname)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that attaches the given key/value pairs to
	// every message it emits.
	With(args ...any) Logger
}
