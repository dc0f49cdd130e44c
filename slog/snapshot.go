package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/xhsnote"
)

// Ensure LoggingNoteStore implements xhsnote.NoteStore.
var _ xhsnote.NoteStore = (*LoggingNoteStore)(nil)

// LoggingNoteStore wraps a NoteStore with logging.
type LoggingNoteStore struct {
	next   xhsnote.NoteStore
	logger *slog.Logger
}

// NewLoggingNoteStore creates a new LoggingNoteStore.
func NewLoggingNoteStore(next xhsnote.NoteStore, logger *slog.Logger) *LoggingNoteStore {
	return &LoggingNoteStore{next: next, logger: logger}
}

// SaveNote delegates to the wrapped store and logs whether a snapshot was written.
func (s *LoggingNoteStore) SaveNote(ctx context.Context, snap *xhsnote.Snapshot) (created bool, err error) {
	defer func(begin time.Time) {
		s.logger.Info("save note",
			"note_id", snap.NoteID,
			"created", created,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveNote(ctx, snap)
}

// FindSnapshots delegates to the wrapped store.
func (s *LoggingNoteStore) FindSnapshots(ctx context.Context, filter xhsnote.SnapshotFilter) (snaps []*xhsnote.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find snapshots",
			"count", len(snaps),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshots(ctx, filter)
}
