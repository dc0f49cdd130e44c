package main

import (
	xhshttp "github.com/fwojciec/xhsnote/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := xhshttp.NewServer(deps.Notes, deps.Logger)
	return server.ListenAndServe(deps.Ctx, c.Addr)
}
