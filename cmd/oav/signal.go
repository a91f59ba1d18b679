package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/entur/oav/internal/container"
)

// signalContext returns a context cancelled on SIGINT/SIGTERM and a
// CancelToken flipped at the same moment, so a running pipeline observes
// the interruption on its next poll tick.
func signalContext(parent context.Context) (context.Context, container.CancelToken) {
	ctx, cancel := context.WithCancel(parent)
	token := container.NewCancelToken()
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ch:
			fmt.Fprintln(os.Stderr, "\n[oav] interrupted — cancelling pipeline")
			token.Cancel()
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, token
}
