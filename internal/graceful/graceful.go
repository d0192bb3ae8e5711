// Package graceful coordinates resource teardown on process signals.
package graceful

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"agendaveiro/internal/utils/logger/sl"
)

// Operation releases one resource during shutdown.
type Operation func(ctx context.Context) error

// GracefulShutdown waits for SIGINT/SIGTERM, runs all operations
// concurrently under the given timeout and then closes the returned
// channel. The caller blocks on that channel.
func GracefulShutdown(
	ctx context.Context,
	timeout time.Duration,
	operations map[string]Operation,
	logger *slog.Logger,
) <-chan struct{} {
	wait := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigChan:
			logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		case <-ctx.Done():
			logger.Info("shutdown requested by context")
		}

		timeoutCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var wg sync.WaitGroup
		for name, op := range operations {
			wg.Add(1)
			go func(name string, op Operation) {
				defer wg.Done()

				logger.Info("shutting down", slog.String("operation", name))
				if err := op(timeoutCtx); err != nil {
					logger.Error("shutdown failed",
						slog.String("operation", name),
						sl.Err(err),
					)
					return
				}
				logger.Info("shutdown complete", slog.String("operation", name))
			}(name, op)
		}

		wg.Wait()
		close(wait)
	}()

	return wait
}
