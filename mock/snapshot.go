package mock

import (
	"context"

	"github.com/fwojciec/xhsnote"
)

var _ xhsnote.NoteStore = (*NoteStore)(nil)

// NoteStore is a mock implementation of xhsnote.NoteStore.
type NoteStore struct {
	SaveNoteFn      func(ctx context.Context, snap *xhsnote.Snapshot) (bool, error)
	FindSnapshotsFn func(ctx context.Context, filter xhsnote.SnapshotFilter) ([]*xhsnote.Snapshot, error)
}

func (s *NoteStore) SaveNote(ctx context.Context, snap *xhsnote.Snapshot) (bool, error) {
	return s.SaveNoteFn(ctx, snap)
}

func (s *NoteStore) FindSnapshots(ctx context.Context, filter xhsnote.SnapshotFilter) ([]*xhsnote.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}
