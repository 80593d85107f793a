// Package graceful blocks until the process is asked to stop and then shuts
// down its servers in order.
package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Shutdowner is anything that can be stopped within a deadline.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// ShutdownFunc adapts a function to Shutdowner.
type ShutdownFunc func(ctx context.Context) error

func (f ShutdownFunc) Shutdown(ctx context.Context) error { return f(ctx) }

// WaitForShutdown waits for SIGINT, SIGTERM or ctx to finish, then calls each
// Shutdowner in order, sharing one timeout.
func WaitForShutdown(ctx context.Context, timeout time.Duration, steps ...Shutdowner) {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	zap.L().Info("Shutting down...")

	Shutdown(timeout, steps...)
}

// Shutdown calls each step in order. Failures are logged and do not stop later steps.
func Shutdown(timeout time.Duration, steps ...Shutdowner) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, s := range steps {
		if err := s.Shutdown(ctx); err != nil {
			zap.L().Error("Shutdown step failed", zap.Error(err))
		}
	}
	zap.L().Info("Shutdown complete")
}
