package mock

import (
	"context"

	"github.com/fwojciec/xhsnote"
)

var _ xhsnote.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of xhsnote.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, shortURL string) (string, error)
}

func (r *Resolver) Resolve(ctx context.Context, shortURL string) (string, error) {
	return r.ResolveFn(ctx, shortURL)
}
