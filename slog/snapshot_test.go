package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/xhsnote"
	"github.com/fwojciec/xhsnote/mock"
	xhsslog "github.com/fwojciec/xhsnote/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingNoteStore_SaveNote(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.NoteStore{
		SaveNoteFn: func(ctx context.Context, snap *xhsnote.Snapshot) (bool, error) {
			return true, nil
		},
	}

	s := xhsslog.NewLoggingNoteStore(inner, logger)
	created, err := s.SaveNote(context.Background(), &xhsnote.Snapshot{NoteID: "abc"})

	require.NoError(t, err)
	assert.True(t, created)
	output := buf.String()
	assert.Contains(t, output, "save note")
	assert.Contains(t, output, "note_id=abc")
	assert.Contains(t, output, "created=true")
}

func TestLoggingNoteStore_FindSnapshots(t *testing.T) {
	t.Parallel()

	var got xhsnote.SnapshotFilter
	inner := &mock.NoteStore{
		FindSnapshotsFn: func(ctx context.Context, filter xhsnote.SnapshotFilter) ([]*xhsnote.Snapshot, error) {
			got = filter
			return []*xhsnote.Snapshot{{NoteID: "abc"}}, nil
		},
	}

	var buf bytes.Buffer
	s := xhsslog.NewLoggingNoteStore(inner, slog.New(slog.NewTextHandler(&buf, nil)))
	snaps, err := s.FindSnapshots(context.Background(), xhsnote.SnapshotFilter{Limit: 5})

	require.NoError(t, err)
	assert.Len(t, snaps, 1)
	assert.Equal(t, 5, got.Limit)
}
