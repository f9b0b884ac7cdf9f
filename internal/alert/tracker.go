package alert

import (
	"time"

	"github.com/google/uuid"
)

// Event is a discrete alert emitted when a station crosses into critical
// severity. Consumers use it for intrusive notifications, so it fires on the
// transition only; a station that stays critical keeps its single event.
type Event struct {
	ID        string    `json:"id"`
	StationID string    `json:"station_id"`
	Severity  Severity  `json:"severity"`
	Value     float64   `json:"value"`
	Time      time.Time `json:"time"`
}

// Tracker detects critical transitions between synchronization cycles.
//
// The tracker is owned and driven by the cycle driver only; it is not safe
// for concurrent use.
type Tracker struct {
	last map[string]Severity
}

func NewTracker() *Tracker {
	return &Tracker{last: make(map[string]Severity)}
}

// Observe records the snapshots of one cycle and returns an Event for every
// station whose severity became critical this cycle. A station seen critical
// on its very first observation counts as a transition.
func (t *Tracker) Observe(snapshots []Snapshot, now time.Time) []Event {
	var events []Event

	for _, snap := range snapshots {
		prev, seen := t.last[snap.StationID]
		t.last[snap.StationID] = snap.Severity

		if snap.Severity != SeverityCritical {
			continue
		}
		if seen && prev == SeverityCritical {
			continue
		}

		events = append(events, Event{
			ID:        uuid.NewString(),
			StationID: snap.StationID,
			Severity:  snap.Severity,
			Value:     snap.Reading.WaterLevel.Value,
			Time:      now,
		})
	}

	return events
}
