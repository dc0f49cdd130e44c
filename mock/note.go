package mock

import (
	"context"

	"github.com/fwojciec/xhsnote"
)

var _ xhsnote.NoteService = (*NoteService)(nil)

// NoteService is a mock implementation of xhsnote.NoteService.
type NoteService struct {
	FindNoteFn func(ctx context.Context, req xhsnote.NoteRequest) (*xhsnote.Note, error)
}

func (s *NoteService) FindNote(ctx context.Context, req xhsnote.NoteRequest) (*xhsnote.Note, error) {
	return s.FindNoteFn(ctx, req)
}

var _ xhsnote.NoteDecoder = (*NoteDecoder)(nil)

// NoteDecoder is a mock implementation of xhsnote.NoteDecoder.
type NoteDecoder struct {
	DecodeNoteFn func(state string, noteType string) (*xhsnote.Note, error)
}

func (d *NoteDecoder) DecodeNote(state string, noteType string) (*xhsnote.Note, error) {
	return d.DecodeNoteFn(state, noteType)
}
