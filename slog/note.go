package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/xhsnote"
)

// Ensure LoggingNoteService implements xhsnote.NoteService.
var _ xhsnote.NoteService = (*LoggingNoteService)(nil)

// LoggingNoteService wraps a NoteService with logging.
type LoggingNoteService struct {
	next   xhsnote.NoteService
	logger *slog.Logger
}

// NewLoggingNoteService creates a new LoggingNoteService.
func NewLoggingNoteService(next xhsnote.NoteService, logger *slog.Logger) *LoggingNoteService {
	return &LoggingNoteService{next: next, logger: logger}
}

// FindNote delegates to the wrapped service and logs the outcome.
// Failures are logged with their error code.
func (s *LoggingNoteService) FindNote(ctx context.Context, req xhsnote.NoteRequest) (note *xhsnote.Note, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.URL,
			"type", req.NoteType(),
			"duration", time.Since(begin),
		}
		if err != nil {
			s.logger.Warn("find note", append(attrs, "code", xhsnote.ErrorCode(err), "err", err)...)
			return
		}
		s.logger.Info("find note", append(attrs, "note_id", note.NoteID, "images", len(note.ImageList))...)
	}(time.Now())
	return s.next.FindNote(ctx, req)
}
