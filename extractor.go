package xhsnote

// StateMarker is the global assignment that carries a page's client state.
const StateMarker = "window.__INITIAL_STATE__"

// StateExtractor locates the client state blob embedded in page HTML.
type StateExtractor interface {
	// ExtractState returns the object literal assigned to StateMarker.
	// The text is returned as found, without any repair.
	// Returns ESTATENOTFOUND when no script carries the assignment.
	ExtractState(html string) (string, error)
}
