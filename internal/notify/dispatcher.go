package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bondspire/intake-api/internal/metrics"
)

const defaultDispatchTimeout = 5 * time.Second

// Dispatcher delivers events in the background. Failures are logged and counted, never returned.
type Dispatcher struct {
	notifier Notifier
	logger   *zap.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewDispatcher wraps notifier. Each delivery gets its own context bounded by timeout.
func NewDispatcher(notifier Notifier, logger *zap.Logger, timeout time.Duration) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	return &Dispatcher{notifier: notifier, logger: logger, timeout: timeout}
}

// Dispatch starts delivery of event and returns immediately.
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil || d.notifier == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		err := d.deliver(event)
		metrics.ObserveNotification(event.Kind, err)
		if err != nil {
			d.logger.Error("notification failed",
				zap.String("kind", event.Kind),
				zap.String("id", event.ID),
				zap.Error(err),
			)
		}
	}()
}

func (d *Dispatcher) deliver(event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	return d.notifier.Notify(ctx, event)
}

// Wait blocks until in-flight deliveries finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	if d == nil {
		return nil
	}
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
