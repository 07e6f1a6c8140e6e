package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

//nolint:gochecknoglobals // Package-level context key is idiomatic
var loggerKey = contextKey{}

// FromContext returns the logger carried by ctx, or the default logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// WithDocument scopes the context logger to one source document.
// Every entry logged through the returned context carries the path field.
func WithDocument(ctx context.Context, path string) (context.Context, *log.Logger) {
	logger := FromContext(ctx).With(FieldPath, path)
	return WithLogger(ctx, logger), logger
}

// ForCollector returns the context logger tagged with a collector name.
func ForCollector(ctx context.Context, name string) *log.Logger {
	return FromContext(ctx).With(FieldCollector, name)
}
