// Package rod provides a browser-backed xhsnote.Fetcher built on go-rod.
// Use it when the plain HTTP fetcher is served a page without state.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/xhsnote"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxTabs is the default number of pages open at once.
const DefaultMaxTabs = 3

// Ensure Fetcher implements xhsnote.Fetcher at compile time.
var _ xhsnote.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using headless Chrome.
// Pages are opened through go-rod/stealth so the site sees an ordinary
// browser. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	ua       string
	tabs     chan struct{}

	mu     sync.Mutex
	closed bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single fetch.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxTabs limits how many pages are open at once.
// Defaults to DefaultMaxTabs if not specified.
func WithMaxTabs(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.tabs = make(chan struct{}, n)
		}
	}
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher that
// uses it. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		ua:      xhsnote.UserAgent,
		tabs:    make(chan struct{}, DefaultMaxTabs),
	}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL, waits for the load event and returns the
// serialized DOM.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return "", xhsnote.Errorf(xhsnote.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	select {
	case f.tabs <- struct{}{}:
		defer func() { <-f.tabs }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := stealth.Page(f.browser)
	if err != nil {
		return "", fmt.Errorf("create tab: %w", err)
	}
	defer page.Close()

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.ua}); err != nil {
		return "", fmt.Errorf("set user agent: %w", err)
	}

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("get HTML from %s: %w", url, err)
	}
	return html, nil
}

// LauncherPID returns the PID of the browser process.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// Close shuts down the browser. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
