package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/agos-monitor/agos/internal/agoserr"
)

// ErrSuperseded means a newer request for the same logical operation arrived
// while this one was waiting to retry. The superseded caller should simply
// drop its result; the newer request owns the outcome.
var ErrSuperseded = errors.New("superseded by a newer request")

// DefaultDelays is the fixed backoff schedule between retry attempts.
var DefaultDelays = []time.Duration{1 * time.Second, 2 * time.Second, 5 * time.Second}

// DefaultAttempts is how many times an operation runs before giving up.
const DefaultAttempts = 3

// Retrier wraps operations with bounded retries.
//
// Retries wait on a fixed ascending schedule, unless the failed attempt
// carried a server-advised delay (RetryAdvice), which wins for that wait.
//
// Invocations are keyed: starting Do with a key invalidates the pending
// retry-wait of any earlier Do with the same key, so rapid repeated requests
// (a user flipping through dates) never race each other.
type Retrier struct {
	MaxAttempts int
	Delays      []time.Duration

	mu    sync.Mutex
	waits map[string]chan struct{}
}

func NewRetrier() *Retrier {
	return &Retrier{
		MaxAttempts: DefaultAttempts,
		Delays:      DefaultDelays,
	}
}

// Do runs op until it succeeds or attempts are exhausted.
// The last error is wrapped in ErrRetriesExhausted, never swallowed.
func (r *Retrier) Do(ctx context.Context, key string, op func(context.Context) error) error {
	superseded := r.register(key)
	defer r.release(key, superseded)

	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var last error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := r.wait(ctx, superseded, r.delay(attempt-1, last)); err != nil {
				return err
			}
		}

		last = op(ctx)
		if last == nil {
			return nil
		}
	}

	return agoserr.New(agoserr.ErrRetriesExhausted, last, "%d attempts failed", attempts)
}

// delay picks the wait before the next attempt. attempt is zero-based over
// the already-failed attempts.
func (r *Retrier) delay(attempt int, err error) time.Duration {
	var advice *RetryAdvice
	if errors.As(err, &advice) {
		return advice.After
	}

	if len(r.Delays) == 0 {
		return time.Second
	}
	if attempt >= len(r.Delays) {
		attempt = len(r.Delays) - 1
	}
	return r.Delays[attempt]
}

func (r *Retrier) wait(ctx context.Context, superseded <-chan struct{}, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-superseded:
		return ErrSuperseded
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Retrier) register(key string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.waits == nil {
		r.waits = make(map[string]chan struct{})
	}
	if prev, ok := r.waits[key]; ok {
		close(prev)
	}

	ch := make(chan struct{})
	r.waits[key] = ch
	return ch
}

func (r *Retrier) release(key string, own chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.waits[key] == own {
		delete(r.waits, key)
	}
}
