package mock

import "github.com/fwojciec/xhsnote"

var _ xhsnote.StateExtractor = (*StateExtractor)(nil)

// StateExtractor is a mock implementation of xhsnote.StateExtractor.
type StateExtractor struct {
	ExtractStateFn func(html string) (string, error)
}

func (e *StateExtractor) ExtractState(html string) (string, error) {
	return e.ExtractStateFn(html)
}
