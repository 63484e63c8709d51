// Package ctxlog carries a slog.Logger through context.Context so that
// deeply nested code logs with the caller's attributes attached.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported to avoid collisions with context keys from other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from a context, falling back to the
// process-wide default logger when none was embedded.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
