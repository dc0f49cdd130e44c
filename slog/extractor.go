package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/xhsnote"
)

// Ensure LoggingStateExtractor implements xhsnote.StateExtractor.
var _ xhsnote.StateExtractor = (*LoggingStateExtractor)(nil)

// LoggingStateExtractor wraps a StateExtractor with debug logging.
type LoggingStateExtractor struct {
	next   xhsnote.StateExtractor
	logger *slog.Logger
}

// NewLoggingStateExtractor creates a new LoggingStateExtractor.
func NewLoggingStateExtractor(next xhsnote.StateExtractor, logger *slog.Logger) *LoggingStateExtractor {
	return &LoggingStateExtractor{next: next, logger: logger}
}

// ExtractState delegates to the wrapped extractor and logs sizes in and out.
func (e *LoggingStateExtractor) ExtractState(html string) (state string, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract state",
			"html_bytes", len(html),
			"state_bytes", len(state),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractState(html)
}
