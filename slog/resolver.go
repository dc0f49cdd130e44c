package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/xhsnote"
)

// Ensure LoggingResolver implements xhsnote.Resolver.
var _ xhsnote.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with logging.
type LoggingResolver struct {
	next   xhsnote.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next xhsnote.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
func (r *LoggingResolver) Resolve(ctx context.Context, shortURL string) (location string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("resolve",
			"url", shortURL,
			"location", location,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Resolve(ctx, shortURL)
}
