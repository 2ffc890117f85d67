package selection

import (
	"context"
	"time"
)

// Waiter awaits a condition by polling, with a timeout and explicit
// cancelation. It abstracts "wait until the rendering surface has cards"
// without binding the core to a real rendering surface: tests inject a fake
// predicate. At most one of onReady or onTimeout runs; a canceled waiter
// runs neither.
type Waiter struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// AwaitCondition starts a waiter that polls cond every interval until it
// returns true (then onReady runs), the timeout elapses (then onTimeout
// runs), or the waiter is canceled. The condition is checked once
// immediately before any waiting.
func AwaitCondition(cond func() bool, interval, timeout time.Duration, onReady, onTimeout func()) *Waiter {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Waiter{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(w.done)

		if cond() {
			onReady()
			return
		}

		deadline := time.NewTimer(timeout)
		defer deadline.Stop()
		tick := time.NewTicker(interval)
		defer tick.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-deadline.C:
				onTimeout()
				return
			case <-tick.C:
				if cond() {
					onReady()
					return
				}
			}
		}
	}()
	return w
}

// Cancel stops the waiter. Safe to call more than once and after the waiter
// has already finished.
func (w *Waiter) Cancel() {
	w.cancel()
}

// Done returns a channel closed when the waiter's goroutine has exited.
func (w *Waiter) Done() <-chan struct{} {
	return w.done
}
