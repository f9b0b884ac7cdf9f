// Package scheduler drives periodic feed synchronization.
//
// A Runner fires ticks on a Schedule, stretching the gap between ticks while
// the feed is degraded. The tick itself lives elsewhere; the runner only
// cares when it runs and how it went.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// Tick runs one synchronization cycle and reports how it ended.
type Tick func(ctx context.Context) Outcome

// Runner fires Tick on the given Schedule until stopped.
type Runner struct {
	Schedule Schedule
	Tick     Tick

	mu      sync.Mutex
	backoff *Backoff
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewRunner(s Schedule, tick Tick) *Runner {
	return &Runner{
		Schedule: s,
		Tick:     tick,
		backoff:  NewBackoff(),
	}
}

// Start launches the refresh loop. Calling Start on a running Runner does
// nothing.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx, r.done)
}

// Stop tears the loop down and waits for it to finish. It is idempotent,
// and no tick fires after it returns.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Multiplier reports the current backoff stretch, for the status page.
func (r *Runner) Multiplier() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.backoff.Multiplier()
}

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	if r.Schedule.NeedKickWhenStart() {
		if !r.fire(ctx) {
			return
		}
	}

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		now := CurrentTime()
		wait := r.Schedule.Next(now).Sub(now) * time.Duration(r.Multiplier())

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if !r.fire(ctx) {
			return
		}
	}
}

// fire runs one tick unless the loop was torn down while waiting.
// It reports whether the loop should keep going.
func (r *Runner) fire(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	outcome := r.Tick(ctx)

	r.mu.Lock()
	r.backoff.Observe(outcome)
	r.mu.Unlock()

	return ctx.Err() == nil
}
