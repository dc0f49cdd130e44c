// Package gjson parses page state blobs with github.com/tidwall/gjson.
//
// gjson walks object members in source order, which the note selector relies
// on: only the first entry of the note map is ever considered.
package gjson

import (
	"regexp"

	"github.com/fwojciec/xhsnote"
	"github.com/tidwall/gjson"
)

var (
	undefinedPattern     = regexp.MustCompile(`\bundefined\b`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// Clean rewrites JavaScript object literal text into JSON. Every whole-word
// undefined becomes null, then commas directly before a closing brace or
// bracket are removed. Both passes run once over the raw text, so string
// contents are rewritten too.
func Clean(text string) string {
	text = undefinedPattern.ReplaceAllString(text, "null")
	return trailingCommaPattern.ReplaceAllString(text, "$1")
}

// State is a parsed page state tree. A State belongs to a single request.
type State struct {
	root gjson.Result
}

// Parse cleans text and parses it as JSON.
// Returns EPARSE if the cleaned text is not valid JSON.
func Parse(text string) (*State, error) {
	cleaned := Clean(text)
	if !gjson.Valid(cleaned) {
		return nil, xhsnote.Errorf(xhsnote.EPARSE, "page state is not valid JSON")
	}
	return &State{root: gjson.Parse(cleaned)}, nil
}

// Raw returns the cleaned JSON text of the whole tree.
func (s *State) Raw() string {
	return s.root.Raw
}

// Get returns the value at a gjson path. Missing values are returned as a
// Result whose Exists method reports false.
func (s *State) Get(path string) gjson.Result {
	return s.root.Get(path)
}
