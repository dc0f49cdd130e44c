package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/xhsnote"
	main "github.com/fwojciec/xhsnote/cmd/xhsnote"
	"github.com/fwojciec/xhsnote/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists snapshots with note ID and title", func(t *testing.T) {
		t.Parallel()

		var gotFilter xhsnote.SnapshotFilter
		store := &mock.NoteStore{
			FindSnapshotsFn: func(_ context.Context, filter xhsnote.SnapshotFilter) ([]*xhsnote.Snapshot, error) {
				gotFilter = filter
				return []*xhsnote.Snapshot{
					{
						NoteID:    "note-2",
						Note:      xhsnote.Note{Title: "Second", ImageList: []string{"a", "b"}},
						FetchedAt: time.Date(2025, 1, 16, 11, 0, 0, 0, time.UTC),
					},
					{
						NoteID:    "note-1",
						Note:      xhsnote.Note{Title: "First"},
						FetchedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Snapshots: store,
		}
		cmd := &main.HistoryCmd{Limit: 20}

		require.NoError(t, cmd.Run(deps))

		assert.Nil(t, gotFilter.NoteID)
		assert.Equal(t, 20, gotFilter.Limit)

		output := stdout.String()
		assert.Contains(t, output, "note-2")
		assert.Contains(t, output, "Second")
		assert.Contains(t, output, "2 images")
		assert.Contains(t, output, "note-1")
		assert.Contains(t, output, "First")
	})

	t.Run("filters by note ID", func(t *testing.T) {
		t.Parallel()

		var gotFilter xhsnote.SnapshotFilter
		store := &mock.NoteStore{
			FindSnapshotsFn: func(_ context.Context, filter xhsnote.SnapshotFilter) ([]*xhsnote.Snapshot, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Snapshots: store,
		}
		cmd := &main.HistoryCmd{NoteID: "note-1", Limit: 5}

		require.NoError(t, cmd.Run(deps))
		require.NotNil(t, gotFilter.NoteID)
		assert.Equal(t, "note-1", *gotFilter.NoteID)
		assert.Equal(t, 5, gotFilter.Limit)
	})

	t.Run("shows helpful message when archive is empty", func(t *testing.T) {
		t.Parallel()

		store := &mock.NoteStore{
			FindSnapshotsFn: func(_ context.Context, _ xhsnote.SnapshotFilter) ([]*xhsnote.Snapshot, error) {
				return []*xhsnote.Snapshot{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Snapshots: store,
		}

		require.NoError(t, (&main.HistoryCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No snapshots found")
	})

	t.Run("returns store error", func(t *testing.T) {
		t.Parallel()

		store := &mock.NoteStore{
			FindSnapshotsFn: func(_ context.Context, _ xhsnote.SnapshotFilter) ([]*xhsnote.Snapshot, error) {
				return nil, errors.New("database error")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Snapshots: store,
		}

		err := (&main.HistoryCmd{}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
