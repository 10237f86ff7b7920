package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yanxingzhi/event-form-multi/internal/metrics"
)

var (
	errPanicked = errors.New("notification job panicked")
	errDraining = errors.New("dispatcher draining")
)

// Dispatcher runs best-effort jobs outside the request that triggered them.
// A job gets its own context bounded by timeout, so a finished or aborted
// request never cancels it. Failures go to the log only.
type Dispatcher struct {
	logger  zerolog.Logger
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(logger zerolog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{logger: logger, timeout: timeout}
}

// Go starts fn on a detached goroutine. Once Wait has been called new jobs
// are dropped and Go reports false.
func (d *Dispatcher) Go(name string, fn func(ctx context.Context) error) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn().Str("job", name).Msg("dispatcher draining, notification dropped")
		metrics.ObserveCall(metrics.CallNotification, errDraining)
		return false
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error().Str("job", name).Interface("panic", r).Msg("notification job panicked")
				metrics.ObserveCall(metrics.CallNotification, errPanicked)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		err := fn(ctx)
		metrics.ObserveCall(metrics.CallNotification, err)
		if err != nil {
			d.logger.Warn().Err(err).Str("job", name).Msg("notification failed")
			return
		}
		d.logger.Debug().Str("job", name).Msg("notification sent")
	}()
	return true
}

// Wait stops accepting jobs and blocks until every started job has returned
// or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
