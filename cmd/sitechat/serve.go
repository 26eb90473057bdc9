package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	schttp "github.com/fwojciec/sitechat/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until interrupted, then stops
// accepting requests and interrupts running crawls.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := deps.Crawler.Recover(ctx)
	if err != nil {
		return fmt.Errorf("recovering interrupted crawls: %w", err)
	}
	if n > 0 {
		fmt.Fprintf(deps.Stdout, "Marked %d interrupted crawls as failed\n", n)
	}

	srv := schttp.NewServer()
	srv.Addr = c.Addr
	srv.CrawlService = deps.Crawler
	srv.ChatService = deps.Chat
	srv.Logger = deps.Logger

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), schttp.ShutdownTimeout)
		defer cancel()
		return errors.Join(srv.Shutdown(shutdownCtx), deps.Crawler.Close())
	})

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)
	return g.Wait()
}
