package gjson

import (
	"github.com/fwojciec/xhsnote"
	"github.com/tidwall/gjson"
)

// Ensure Decoder implements xhsnote.NoteDecoder at compile time.
var _ xhsnote.NoteDecoder = (*Decoder)(nil)

// Decoder parses state blobs and selects notes from them.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeNote parses state and selects the note of noteType.
func (d *Decoder) DecodeNote(state string, noteType string) (*xhsnote.Note, error) {
	s, err := Parse(state)
	if err != nil {
		return nil, err
	}
	return s.SelectNote(noteType)
}

// SelectNote projects the first entry of note.noteDetailMap into a Note.
//
// Only the first entry is inspected. When its type differs from noteType the
// result is ENOTFOUND, even if a later entry would match.
func (s *State) SelectNote(noteType string) (*xhsnote.Note, error) {
	var entry gjson.Result
	var found bool
	if details := s.root.Get("note.noteDetailMap"); details.IsObject() {
		details.ForEach(func(_, value gjson.Result) bool {
			entry, found = value, true
			return false
		})
	}
	if !found {
		return nil, xhsnote.Errorf(xhsnote.ENOTFOUND, "page state has no notes")
	}

	note := entry.Get("note")
	if t := note.Get("type"); t.Type != gjson.String || t.Str != noteType {
		return nil, xhsnote.Errorf(xhsnote.ENOTFOUND, "first note is not of type %q", noteType)
	}

	return &xhsnote.Note{
		ImageList: imageURLs(note.Get("imageList")),
		XsecToken: stringValue(note.Get("xsecToken")),
		NoteID:    stringValue(note.Get("noteId")),
		Time:      intValue(note.Get("time")),
		Title:     stringValue(note.Get("title")),
		Type:      noteType,
		Desc:      stringValue(note.Get("desc")),
		TagList:   tagNames(note.Get("tagList")),
	}, nil
}

// imageURLs returns the urlDefault of every image that has one.
func imageURLs(images gjson.Result) []string {
	urls := []string{}
	if !images.IsArray() {
		return urls
	}
	for _, image := range images.Array() {
		if u := image.Get("urlDefault"); u.Type == gjson.String {
			urls = append(urls, u.Str)
		}
	}
	return urls
}

// tagNames keeps string tags as they are and takes the name of tag objects.
func tagNames(tags gjson.Result) []string {
	names := []string{}
	if !tags.IsArray() {
		return names
	}
	for _, tag := range tags.Array() {
		switch {
		case tag.Type == gjson.String:
			names = append(names, tag.Str)
		case tag.IsObject():
			if name := tag.Get("name"); name.Type == gjson.String {
				names = append(names, name.Str)
			}
		}
	}
	return names
}

func stringValue(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number:
		return r.String()
	}
	return ""
}

func intValue(r gjson.Result) int64 {
	if r.Type == gjson.Number {
		return r.Int()
	}
	return 0
}
