package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

const stopTimeout = 10 * time.Second

// runServe starts the MCP transport and blocks until one of:
//   - SIGINT or SIGTERM is received
//   - ctx is cancelled
//   - the transport stops by itself (stdin closed, listener failure)
//
// Shutdown is graceful in every case. The transport's own error, if any, is
// returned.
func runServe(ctx context.Context, services *Services) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := services.Server
	if err := srv.Start(ctx); err != nil {
		logging.Error("Serve", err, "Failed to start MCP server")
		return err
	}
	logging.Info("Serve", "MCP server listening on %s. Press Ctrl+C to stop.", srv.GetEndpoint())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-srv.Done()
		return srv.Err()
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-srv.Done():
		}

		logging.Info("Serve", "--- Shutting down MCP server ---")
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := srv.Stop(stopCtx); err != nil {
			logging.Warn("Serve", "Error during shutdown: %v", err)
		}
		return nil
	})

	return g.Wait()
}
