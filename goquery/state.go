// Package goquery implements HTML inspection on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xhsnote"
)

// Ensure StateExtractor implements xhsnote.StateExtractor at compile time.
var _ xhsnote.StateExtractor = (*StateExtractor)(nil)

var (
	// assignmentPattern locates the start of the assigned object literal.
	assignmentPattern = regexp.MustCompile(`window\.__INITIAL_STATE__\s*=\s*\{`)

	// heuristicPattern takes everything up to the first closing brace that is
	// followed by a semicolon or the end of the script. It does not balance
	// braces and is only used when the object literal never closes.
	heuristicPattern = regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.*?\})(?:;|$)`)
)

// StateExtractor pulls the window.__INITIAL_STATE__ object literal out of
// server-rendered pages.
type StateExtractor struct{}

// NewStateExtractor creates a new StateExtractor.
func NewStateExtractor() *StateExtractor {
	return &StateExtractor{}
}

// ExtractState finds the first script that mentions the state marker and
// returns the object literal assigned there. Later scripts are never
// inspected, even when the first one yields nothing.
func (e *StateExtractor) ExtractState(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", xhsnote.WrapError(xhsnote.ESTATENOTFOUND, err, "failed to parse HTML")
	}

	var script string
	var found bool
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if strings.Contains(text, xhsnote.StateMarker) {
			script, found = text, true
			return false
		}
		return true
	})
	if !found {
		return "", xhsnote.Errorf(xhsnote.ESTATENOTFOUND, "no script assigns %s", xhsnote.StateMarker)
	}

	state, ok := extractObject(script)
	if !ok {
		return "", xhsnote.Errorf(xhsnote.ESTATENOTFOUND, "no object literal assigned to %s", xhsnote.StateMarker)
	}
	return state, nil
}

// extractObject returns the object literal assigned to the state marker in script.
func extractObject(script string) (string, bool) {
	loc := assignmentPattern.FindStringIndex(script)
	if loc == nil {
		return "", false
	}
	// The match ends just past the opening brace.
	if obj, ok := balancedObject(script[loc[1]-1:]); ok {
		return obj, true
	}

	m := heuristicPattern.FindStringSubmatch(script)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// balancedObject returns the prefix of s, which must start with '{', up to
// and including the brace that closes it. Braces inside string literals are
// ignored. Reports false when the object never closes.
func balancedObject(s string) (string, bool) {
	depth := 0
	var quote byte
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
