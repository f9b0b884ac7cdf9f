// Package monitor runs the synchronization cycle: fetch the feed, resolve
// the latest reading per station, classify, aggregate, store, and publish.
package monitor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/agos-monitor/agos/internal/agoserr"
	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/broadcast"
	"github.com/agos-monitor/agos/internal/feed"
	"github.com/agos-monitor/agos/internal/scheduler"
	"github.com/agos-monitor/agos/internal/station"
	"github.com/agos-monitor/agos/internal/store"
	"github.com/agos-monitor/agos/internal/telemetry"
)

// LatestKey is the cache key for the ordinary "current conditions" cycle.
const LatestKey = "latest"

// FetchFunc fetches one feed payload.
type FetchFunc func(ctx context.Context) ([]telemetry.Reading, error)

// Monitor owns the whole synchronization pipeline. Cache, tracker, and
// snapshot state are mutated only from inside Sync; every other component
// just reads the Store.
type Monitor struct {
	Fetch      FetchFunc
	Retrier    *feed.Retrier
	Fleet      station.Fleet
	Thresholds alert.Thresholds
	Store      *store.Store
	Cache      *store.Cache
	Broadcast  *broadcast.Broadcaster

	tracker  *alert.Tracker
	inFlight atomic.Bool
}

func New(fetch FetchFunc, s *store.Store, b *broadcast.Broadcaster) *Monitor {
	return &Monitor{
		Fetch:      fetch,
		Retrier:    feed.NewRetrier(),
		Fleet:      station.DefaultFleet(),
		Thresholds: alert.DefaultThresholds(),
		Store:      s,
		Cache:      store.NewCache(),
		Broadcast:  b,
		tracker:    alert.NewTracker(),
	}
}

// Sync runs one synchronization cycle for the given cache key.
//
// If a cycle is already in flight the call is a no-op; overlapping cycles
// would race to replace the same snapshot set. A fetch failure, or a payload
// that matches no tracked station, falls back to cached data when any exists
// and marks the result stale;
// with no cache at all the error surfaces and the stored state stands
// unchanged.
func (m *Monitor) Sync(ctx context.Context, key string) (scheduler.Outcome, error) {
	if !m.inFlight.CompareAndSwap(false, true) {
		return scheduler.OutcomeSkipped, nil
	}
	defer m.inFlight.Store(false)

	start := time.Now()

	readings, err := m.fetchWithRetry(ctx, key)
	if err == nil && !m.anyTracked(readings) {
		// A payload with readings only for untracked stations must not
		// replace good state or count as a successful fetch.
		err = agoserr.New(agoserr.ErrNoMatchingData, nil, "feed has no readings for any tracked station")
	}
	if err == nil {
		m.Cache.Put(key, readings, time.Now())
		m.apply(readings, false)
		m.Store.SetHealthy()
		m.Store.Report(store.Record{
			Time:    time.Now(),
			Status:  store.StatusHealthy,
			Latency: time.Since(start),
			Source:  "feed",
			Message: fmt.Sprintf("%d readings", len(readings)),
		})
		return scheduler.OutcomeSuccess, nil
	}

	entry, ok := m.Cache.Get(key)
	if !ok {
		entry, ok = m.Cache.LatestSuccessful()
	}
	if ok {
		m.apply(entry.Readings, true)
		m.Store.Report(store.Record{
			Time:    time.Now(),
			Status:  store.StatusDegraded,
			Latency: time.Since(start),
			Source:  "feed",
			Message: fmt.Sprintf("serving cache from %s: %s", entry.FetchedAt.Format(time.RFC3339), err),
		})
		return scheduler.OutcomeDegraded, nil
	}

	m.Store.ReportInternalError("feed", err.Error())
	return scheduler.OutcomeFailure, err
}

// Tick adapts Sync to the refresh loop.
func (m *Monitor) Tick(ctx context.Context) scheduler.Outcome {
	outcome, _ := m.Sync(ctx, LatestKey)
	return outcome
}

// anyTracked reports whether at least one fleet station has a reading in
// the payload.
func (m *Monitor) anyTracked(readings []telemetry.Reading) bool {
	for _, st := range m.Fleet {
		if _, ok := telemetry.LatestFor(readings, st.FeedIDs...); ok {
			return true
		}
	}
	return false
}

func (m *Monitor) fetchWithRetry(ctx context.Context, key string) ([]telemetry.Reading, error) {
	var readings []telemetry.Reading

	err := m.Retrier.Do(ctx, key, func(ctx context.Context) error {
		rs, err := m.Fetch(ctx)
		if err != nil {
			return err
		}
		readings = rs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return readings, nil
}

// apply recomputes the fleet state from a payload and publishes the result.
func (m *Monitor) apply(readings []telemetry.Reading, stale bool) {
	now := time.Now()

	snapshots := make([]alert.Snapshot, len(m.Fleet))
	for i, st := range m.Fleet {
		r, ok := telemetry.LatestFor(readings, st.FeedIDs...)
		snapshots[i] = alert.NewSnapshot(st.ID, r, ok, m.Thresholds, now)
	}

	summary := alert.Aggregate(snapshots, len(m.Fleet), now)
	summary.Stale = stale

	events := m.tracker.Observe(snapshots, now)

	m.Store.ReplaceState(snapshots, summary, readings)
	m.Broadcast.Publish(broadcast.Update{Summary: summary, Events: events})
}
