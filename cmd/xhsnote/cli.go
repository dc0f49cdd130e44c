package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/xhsnote"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Notes     xhsnote.NoteService
	Snapshots xhsnote.NoteStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Log at debug level"`
	LogJSON bool          `name:"log-json" help:"Write logs as JSON"`
	Timeout time.Duration `env:"XHSNOTE_TIMEOUT" default:"10s" help:"Timeout for each outgoing request"`

	Serve   ServeCmd   `cmd:"" help:"Serve note lookups over HTTP"`
	Get     GetCmd     `cmd:"" help:"Look up one or more notes and print them as JSON"`
	History HistoryCmd `cmd:"" help:"List archived note snapshots"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string `env:"XHSNOTE_ADDR" default:":8008" help:"Listen address"`
	Browser bool   `env:"XHSNOTE_BROWSER" help:"Fetch pages with headless Chrome"`
	Archive bool   `help:"Archive every note served"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URLs        []string `arg:"" name:"url" help:"Note links (full or short)"`
	Type        string   `short:"t" default:"normal" help:"Note type to select"`
	Browser     bool     `env:"XHSNOTE_BROWSER" help:"Fetch pages with headless Chrome"`
	Save        bool     `short:"s" help:"Archive the fetched notes"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent lookup limit"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	NoteID string `arg:"" optional:"" name:"note-id" help:"Only show snapshots of this note"`
	Limit  int    `short:"n" default:"20" help:"Maximum snapshots to list"`
}
