// Package scrape runs the note lookup pipeline: resolve, normalize, fetch,
// extract, decode and rewrite. Each stage blocks on the previous one and the
// first failure ends the lookup; nothing is retried.
package scrape

import (
	"context"
	"log/slog"

	"github.com/fwojciec/xhsnote"
)

// Ensure Service implements xhsnote.NoteService at compile time.
var _ xhsnote.NoteService = (*Service)(nil)

// Service orchestrates a note lookup over injected collaborators.
// Service holds no per-request state and is safe for concurrent use as long
// as its collaborators are.
type Service struct {
	Resolver  xhsnote.Resolver
	Fetcher   xhsnote.Fetcher
	Extractor xhsnote.StateExtractor
	Decoder   xhsnote.NoteDecoder

	// Store, if set, receives a snapshot of every note found.
	// Archive failures are logged and never fail the lookup.
	Store xhsnote.NoteStore

	// Logger receives archive failures. Nil discards them.
	Logger *slog.Logger
}

// FindNote looks up the note behind req.URL.
func (s *Service) FindNote(ctx context.Context, req xhsnote.NoteRequest) (*xhsnote.Note, error) {
	if req.URL == "" {
		return nil, xhsnote.Errorf(xhsnote.EMISSINGPARAM, "url required")
	}

	link := req.URL
	if xhsnote.IsShortLink(link) {
		location, err := s.Resolver.Resolve(ctx, link)
		if err != nil {
			return nil, err
		}
		link = location
	}

	noteLink, err := xhsnote.ParseNoteLink(link)
	if err != nil {
		return nil, err
	}
	pageURL := noteLink.URL()

	html, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, xhsnote.WrapError(xhsnote.ETRANSPORT, err, "fetching note page")
	}

	state, err := s.Extractor.ExtractState(html)
	if err != nil {
		return nil, err
	}

	note, err := s.Decoder.DecodeNote(state, req.NoteType())
	if err != nil {
		return nil, err
	}
	note.ImageList = xhsnote.RewriteImageURLs(note.ImageList)

	if s.Store != nil {
		s.archive(ctx, noteLink, note)
	}

	return note, nil
}

// archive stores a snapshot of note. Notes whose state omits the ID are
// filed under the ID from the link.
func (s *Service) archive(ctx context.Context, link *xhsnote.NoteLink, note *xhsnote.Note) {
	noteID := note.NoteID
	if noteID == "" {
		noteID = link.ID
	}
	_, err := s.Store.SaveNote(ctx, &xhsnote.Snapshot{
		NoteID:    noteID,
		SourceURL: link.URL(),
		Note:      *note,
	})
	if err != nil && s.Logger != nil {
		s.Logger.Warn("archive note", "note_id", noteID, "err", err)
	}
}
