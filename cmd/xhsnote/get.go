package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/xhsnote"
	xhshttp "github.com/fwojciec/xhsnote/http"
	"github.com/tidwall/pretty"
	"golang.org/x/sync/errgroup"
)

// Run executes the get command. Lookups run concurrently but results are
// printed in argument order, one envelope per link.
func (c *GetCmd) Run(deps *Dependencies) error {
	results := make([]*xhshttp.Response, len(c.URLs))

	var g errgroup.Group
	g.SetLimit(max(c.Concurrency, 1))
	for i, url := range c.URLs {
		g.Go(func() error {
			note, err := deps.Notes.FindNote(deps.Ctx, xhsnote.NoteRequest{URL: url, Type: c.Type})
			if err != nil {
				results[i] = &xhshttp.Response{
					Code: xhshttp.CodeFailure,
					Msg:  xhshttp.ErrorMessage(xhsnote.ErrorCode(err)),
				}
				return nil
			}
			results[i] = &xhshttp.Response{
				Code:    xhshttp.CodeSuccess,
				Success: true,
				Msg:     "success",
				Data:    note,
			}
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for _, res := range results {
		if !res.Success {
			failed++
		}
		buf, err := json.Marshal(res)
		if err != nil {
			return err
		}
		if _, err := deps.Stdout.Write(pretty.Pretty(buf)); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(c.URLs))
	}
	return nil
}
