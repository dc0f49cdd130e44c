package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/xhsnote"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := xhsnote.SnapshotFilter{Limit: c.Limit}
	if c.NoteID != "" {
		filter.NoteID = &c.NoteID
	}

	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xhsnote.ErrorMessage(err))
		return err
	}

	if len(snaps) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'xhsnote get --save' to archive notes.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d images\n",
			s.FetchedAt.Local().Format(time.DateTime), s.NoteID, s.Note.Title, len(s.Note.ImageList))
	}
	return w.Flush()
}
