package store

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/telemetry"
)

// Store holds the resolved telemetry state of the fleet, and it also writes
// the agos activity log.
//
// The snapshot set, the fleet summary, and the backing readings are replaced
// together as one unit; a reader never observes a cycle half-applied. Only
// the synchronization cycle writes, everything else just reads.
type Store struct {
	Console io.Writer

	stateLock  sync.RWMutex
	snapshots  []alert.Snapshot
	summary    alert.Summary
	hasSummary bool
	readings   []telemetry.Reading

	errorsLock sync.RWMutex
	errors     []string
	healthy    bool
}

func New(console io.Writer) *Store {
	return &Store{
		Console: console,
		healthy: true,
	}
}

// Report writes one Record to the activity log.
func (s *Store) Report(r Record) {
	if r.Time.IsZero() {
		r.Time = time.Now()
	}
	fmt.Fprintln(s.Console, r)
}

// ReportInternalError reports a failure inside agos itself.
// The message goes both to the activity log and to the /healthz page via
// the Errors method.
func (s *Store) ReportInternalError(scope, message string) {
	s.addError(message)
	s.Report(Record{
		Time:    time.Now(),
		Status:  StatusFailure,
		Source:  scope,
		Message: message,
	})
}

// ReplaceState atomically installs the result of one synchronization cycle.
func (s *Store) ReplaceState(snapshots []alert.Snapshot, summary alert.Summary, readings []telemetry.Reading) {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.snapshots = snapshots
	s.summary = summary
	s.hasSummary = true
	s.readings = readings
}

// Snapshots returns the current snapshot set in fleet order.
func (s *Store) Snapshots() []alert.Snapshot {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	xs := make([]alert.Snapshot, len(s.snapshots))
	copy(xs, s.snapshots)
	return xs
}

// Summary returns the current fleet summary.
// The second value is false until the first cycle completes.
func (s *Store) Summary() (alert.Summary, bool) {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	return s.summary, s.hasSummary
}

// Readings returns the readings the current state was computed from.
func (s *Store) Readings() []telemetry.Reading {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	xs := make([]telemetry.Reading, len(s.readings))
	copy(xs, s.readings)
	return xs
}

// addError adds error message for Errors method, and set healthy status to false.
func (s *Store) addError(message string) {
	s.errorsLock.Lock()
	defer s.errorsLock.Unlock()

	s.healthy = false
	s.errors = append(
		s.errors,
		fmt.Sprintf("%s\t%s", time.Now().Format(time.RFC3339), message),
	)

	if len(s.errors) > 10 {
		s.errors = s.errors[1:]
	}
}

// SetHealthy marks the store healthy again after a fully successful cycle.
func (s *Store) SetHealthy() {
	s.errorsLock.Lock()
	defer s.errorsLock.Unlock()

	s.healthy = true
}

// Errors returns store status and error logs.
func (s *Store) Errors() (healthy bool, messages []string) {
	s.errorsLock.RLock()
	defer s.errorsLock.RUnlock()

	return s.healthy, s.errors
}
