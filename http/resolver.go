package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/xhsnote"
)

// Ensure Resolver implements xhsnote.Resolver at compile time.
var _ xhsnote.Resolver = (*Resolver)(nil)

// Resolver reads the target of short links without following it.
type Resolver struct {
	client    *http.Client
	userAgent string
}

// NewResolver creates a new Resolver. It accepts the same options as NewFetcher.
func NewResolver(opts ...Option) *Resolver {
	o := newOptions(opts)
	return &Resolver{
		client: &http.Client{
			Timeout:   o.timeout,
			Transport: o.transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: o.userAgent,
	}
}

// Resolve requests shortURL once and returns its Location header.
// Only a 307 Temporary Redirect is accepted.
func (r *Resolver) Resolve(ctx context.Context, shortURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shortURL, nil)
	if err != nil {
		return "", xhsnote.WrapError(xhsnote.EREDIRECT, err, "invalid short link")
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", xhsnote.WrapError(xhsnote.EREDIRECT, err, "short link request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTemporaryRedirect {
		return "", xhsnote.Errorf(xhsnote.EREDIRECT, "short link answered HTTP %d, want 307", resp.StatusCode)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", xhsnote.Errorf(xhsnote.EREDIRECT, "short link redirect has no location")
	}
	return location, nil
}
