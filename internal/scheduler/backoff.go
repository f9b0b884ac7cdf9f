package scheduler

// Outcome classifies how one synchronization cycle ended, as seen by the
// refresh loop.
type Outcome int8

const (
	// OutcomeSuccess means the cycle fetched live data.
	OutcomeSuccess Outcome = iota

	// OutcomeDegraded means the live fetch failed but cached data stood in.
	OutcomeDegraded

	// OutcomeFailure means the cycle failed with nothing to fall back on.
	OutcomeFailure

	// OutcomeSkipped means the tick was a no-op because a cycle was
	// already in flight. It does not touch the backoff state.
	OutcomeSkipped
)

const (
	backoffThreshold = 3
	backoffCap       = 5
)

// Backoff stretches the refresh interval while the feed is degraded but the
// dashboard still has cached data to show. A dead feed with no cache gets no
// backoff at all; keeping the normal cadence there is what gives the fastest
// recovery once the feed returns.
type Backoff struct {
	consecutiveDegraded int
	multiplier          int
}

func NewBackoff() *Backoff {
	return &Backoff{multiplier: 1}
}

// Observe folds one cycle outcome into the backoff state.
func (b *Backoff) Observe(o Outcome) {
	switch o {
	case OutcomeSuccess:
		b.consecutiveDegraded = 0
		b.multiplier = 1
	case OutcomeDegraded:
		b.consecutiveDegraded++
		if b.consecutiveDegraded >= backoffThreshold {
			b.consecutiveDegraded = 0
			b.multiplier *= 2
			if b.multiplier > backoffCap {
				b.multiplier = backoffCap
			}
		}
	case OutcomeFailure:
		// breaks the degraded streak but keeps whatever stretch is active
		b.consecutiveDegraded = 0
	}
}

// Multiplier returns the current interval multiplier, at least 1.
func (b *Backoff) Multiplier() int {
	return b.multiplier
}
