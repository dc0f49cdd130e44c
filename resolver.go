package xhsnote

import "context"

// Resolver follows short links to the location they redirect to.
type Resolver interface {
	// Resolve issues a single request and returns the redirect target.
	// Returns EREDIRECT when the link does not redirect or cannot be reached.
	Resolve(ctx context.Context, shortURL string) (location string, err error)
}
