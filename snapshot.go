package xhsnote

import (
	"context"
	"time"
)

// Snapshot is an archived copy of a note as it was fetched at one point in time.
type Snapshot struct {
	ID          string    `json:"id"`
	NoteID      string    `json:"noteId"`
	SourceURL   string    `json:"sourceUrl"`
	Note        Note      `json:"note"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.NoteID == "" {
		return Errorf(EINVALID, "snapshot note ID required")
	}
	if s.SourceURL == "" {
		return Errorf(EINVALID, "snapshot source URL required")
	}
	return nil
}

// NoteStore archives fetched notes.
type NoteStore interface {
	// SaveNote stores a snapshot of the note. When the most recent snapshot
	// of the same note has identical content, nothing is written and
	// created is false.
	SaveNote(ctx context.Context, snap *Snapshot) (created bool, err error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	NoteID *string `json:"noteId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
