package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/xhsnote"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ xhsnote.NoteStore = (*NoteStore)(nil)

// NoteStore implements xhsnote.NoteStore using SQLite.
type NoteStore struct {
	db *DB
}

// NewNoteStore creates a new NoteStore.
func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db}
}

// hashNote computes the xxHash of a note's content as a hex string.
// The access token differs between share links of the same note, so it is
// left out.
func hashNote(note *xhsnote.Note) (string, error) {
	n := *note
	n.XsecToken = ""
	b, err := json.Marshal(&n)
	if err != nil {
		return "", err
	}
	var sum [8]byte
	h := xxhash.Sum64(b)
	for i := range sum {
		sum[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(sum[:]), nil
}

// SaveNote stores a snapshot unless the latest snapshot of the same note
// has the same content hash.
func (s *NoteStore) SaveNote(ctx context.Context, snap *xhsnote.Snapshot) (bool, error) {
	if err := snap.Validate(); err != nil {
		return false, err
	}

	hash, err := hashNote(&snap.Note)
	if err != nil {
		return false, err
	}
	imageList, err := encodeStrings(snap.Note.ImageList)
	if err != nil {
		return false, err
	}
	tagList, err := encodeStrings(snap.Note.TagList)
	if err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var latest string
	err = tx.QueryRowContext(ctx, `
		SELECT content_hash FROM snapshots
		WHERE note_id = ?
		ORDER BY rowid DESC
		LIMIT 1
	`, snap.NoteID).Scan(&latest)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	if latest == hash {
		snap.ContentHash = hash
		return false, nil
	}

	snap.ID = uuid.New().String()
	snap.ContentHash = hash
	snap.FetchedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, note_id, source_url, note_type, title, description, note_time, xsec_token, image_list, tag_list, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.NoteID, snap.SourceURL, snap.Note.Type, snap.Note.Title, snap.Note.Desc, snap.Note.Time,
		snap.Note.XsecToken, imageList, tagList, snap.ContentHash, snap.FetchedAt.Format(time.RFC3339Nano))
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *NoteStore) FindSnapshots(ctx context.Context, filter xhsnote.SnapshotFilter) ([]*xhsnote.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, note_id, source_url, note_type, title, description, note_time, xsec_token, image_list, tag_list, content_hash, fetched_at FROM snapshots WHERE 1=1`)

	if filter.NoteID != nil {
		query.WriteString(" AND note_id = ?")
		args = append(args, *filter.NoteID)
	}

	query.WriteString(" ORDER BY rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snaps := make([]*xhsnote.Snapshot, 0)
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func scanSnapshot(rows *sql.Rows) (*xhsnote.Snapshot, error) {
	var snap xhsnote.Snapshot
	var imageList, tagList, fetchedAt string

	if err := rows.Scan(&snap.ID, &snap.NoteID, &snap.SourceURL, &snap.Note.Type, &snap.Note.Title,
		&snap.Note.Desc, &snap.Note.Time, &snap.Note.XsecToken, &imageList, &tagList,
		&snap.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	snap.Note.NoteID = snap.NoteID
	if snap.Note.ImageList, err = decodeStrings(imageList, "image_list"); err != nil {
		return nil, err
	}
	if snap.Note.TagList, err = decodeStrings(tagList, "tag_list"); err != nil {
		return nil, err
	}
	if snap.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &snap, nil
}
