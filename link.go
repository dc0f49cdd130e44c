package xhsnote

import (
	"fmt"
	"regexp"
	"strings"
)

// tokenParam is the query parameter every note link must carry.
const tokenParam = "xsec_token"

// noteLinkPattern matches /item/<id> and /explore/<id> paths followed,
// anywhere later in the link, by the token parameter.
var noteLinkPattern = regexp.MustCompile(`/(?:item|explore)/(\w+).*?xsec_token=([\w-]+)`)

// NoteLink identifies a note and the token that grants access to it.
type NoteLink struct {
	ID    string
	Token string
}

// URL returns the canonical page URL for the note.
func (l *NoteLink) URL() string {
	return fmt.Sprintf("https://%s/explore/%s?xsec_token=%s&xsec_source=pc_feed", Host, l.ID, l.Token)
}

// IsShortLink reports whether rawURL must be resolved before it can be parsed.
func IsShortLink(rawURL string) bool {
	return strings.Contains(rawURL, ShortLinkHost)
}

// ParseNoteLink extracts the note ID and token from a note link.
// Only the first candidate in the link is used.
//
// Returns EMISSINGTOKEN when the link has no token at all, and EMALFORMED
// when the token or note ID cannot be located.
func ParseNoteLink(rawURL string) (*NoteLink, error) {
	if !strings.Contains(rawURL, tokenParam) {
		return nil, Errorf(EMISSINGTOKEN, "link has no %s", tokenParam)
	}
	m := noteLinkPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return nil, Errorf(EMALFORMED, "link has no valid note id or %s", tokenParam)
	}
	return &NoteLink{ID: m[1], Token: m[2]}, nil
}

// NormalizeLink converts any accepted note link into its canonical page URL.
func NormalizeLink(rawURL string) (string, error) {
	link, err := ParseNoteLink(rawURL)
	if err != nil {
		return "", err
	}
	return link.URL(), nil
}
