package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/xhsnote"
	"github.com/fwojciec/xhsnote/gjson"
	"github.com/fwojciec/xhsnote/goquery"
	xhshttp "github.com/fwojciec/xhsnote/http"
	"github.com/fwojciec/xhsnote/rod"
	"github.com/fwojciec/xhsnote/scrape"
	xhsslog "github.com/fwojciec/xhsnote/slog"
	"github.com/fwojciec/xhsnote/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Archive database path. Set before calling Run().
	DBPath string

	// SQLite database, opened only by commands that use the archive.
	DB *sqlite.DB

	// Fetcher overrides the page fetcher for end-to-end testing.
	Fetcher xhsnote.Fetcher

	// Resolver overrides the short-link resolver for end-to-end testing.
	Resolver xhsnote.Resolver
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("xhsnote"),
		kong.Description("Fetch Xiaohongshu notes as compact JSON records."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'xhsnote --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose, cli.LogJSON)

	archive := cmd == "history" ||
		(cmd == "get" && cli.Get.Save) ||
		(cmd == "serve" && cli.Serve.Archive)
	if archive {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set XHSNOTE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Snapshots = xhsslog.NewLoggingNoteStore(sqlite.NewNoteStore(m.DB), deps.Logger)
	}

	if cmd == "get" || cmd == "serve" {
		browser := cli.Get.Browser
		if cmd == "serve" {
			browser = cli.Serve.Browser
		}

		fetcher, err := m.newFetcher(browser, cli.Timeout)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		resolver := m.Resolver
		if resolver == nil {
			resolver = xhshttp.NewResolver(xhshttp.WithTimeout(cli.Timeout))
		}

		svc := &scrape.Service{
			Resolver:  xhsslog.NewLoggingResolver(resolver, deps.Logger),
			Fetcher:   xhsslog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractor: xhsslog.NewLoggingStateExtractor(goquery.NewStateExtractor(), deps.Logger),
			Decoder:   gjson.NewDecoder(),
			Store:     deps.Snapshots,
			Logger:    deps.Logger,
		}
		deps.Notes = xhsslog.NewLoggingNoteService(svc, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newFetcher returns the injected fetcher, a headless browser when browser
// is set, or a plain HTTP fetcher.
func (m *Main) newFetcher(browser bool, timeout time.Duration) (xhsnote.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return xhshttp.NewFetcher(xhshttp.WithTimeout(timeout)), nil
}

func newLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func defaultDBPath() string {
	if path := os.Getenv("XHSNOTE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "xhsnote.db"
	}
	dir := filepath.Join(home, ".xhsnote")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "xhsnote.db")
}
