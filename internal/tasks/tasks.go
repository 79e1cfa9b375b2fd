// Package tasks runs fire-and-forget work, like remote cleanup after a
// local delete, without blocking the request that spawned it.
package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Runner struct {
	log     *zap.SugaredLogger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewRunner(log *zap.SugaredLogger, timeout time.Duration) *Runner {
	return &Runner{log: log, timeout: timeout}
}

// Go runs fn in the background with its own deadline. Errors and panics
// are logged, never propagated; callers must not depend on the outcome.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.log.Errorf("task %s panicked: %v", name, p)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			r.log.Warnf("task %s failed: %v", name, err)
		}
	}()
}

// Drain waits for in-flight tasks, up to the context deadline.
func (r *Runner) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
