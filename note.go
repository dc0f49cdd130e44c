package xhsnote

import "context"

// Note is the normalized record of a single note.
//
// Fields missing from the page state are left at their zero value; a note
// is never rejected for incomplete data.
type Note struct {
	ImageList []string `json:"imageList"`
	XsecToken string   `json:"xsecToken"`
	NoteID    string   `json:"noteId"`
	Time      int64    `json:"time"`
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	Desc      string   `json:"desc"`
	TagList   []string `json:"tagList"`
}

// NoteRequest names the note to look up.
type NoteRequest struct {
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// NoteType returns the requested type, falling back to DefaultNoteType.
func (r NoteRequest) NoteType() string {
	if r.Type == "" {
		return DefaultNoteType
	}
	return r.Type
}

// NoteService looks up notes from user-supplied links.
type NoteService interface {
	// FindNote runs the full lookup for a single link: short-link
	// resolution, normalization, fetching, state extraction and record
	// selection. Image URLs on the returned note are already rewritten to
	// their delivery form.
	//
	// Errors carry one of the application error codes in error.go.
	FindNote(ctx context.Context, req NoteRequest) (*Note, error)
}

// NoteDecoder turns an extracted state blob into a note of the given type.
type NoteDecoder interface {
	// DecodeNote returns EPARSE when the blob is not valid JSON after
	// repair, and ENOTFOUND when no note of noteType is present.
	DecodeNote(state string, noteType string) (*Note, error)
}
