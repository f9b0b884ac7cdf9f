package alert_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/telemetry"
)

var now = time.Date(2023, 8, 15, 12, 0, 0, 0, time.UTC)

func snap(id string, level float64, age time.Duration) alert.Snapshot {
	r := telemetry.Reading{
		StationID:  id,
		Time:       now.Add(-age),
		WaterLevel: telemetry.Of(level),
	}
	return alert.NewSnapshot(id, r, true, alert.DefaultThresholds(), now)
}

func TestNewSnapshot(t *testing.T) {
	s := snap("St1", 950, 10*time.Minute)
	if s.Severity != alert.SeverityWarning {
		t.Errorf("expected WARNING but got %s", s.Severity)
	}
	if !s.Online {
		t.Error("a 10 minute old reading should be online")
	}

	s = snap("St2", 650, 90*time.Minute)
	if s.Online {
		t.Error("a 90 minute old reading should be offline")
	}

	s = alert.NewSnapshot("St3", telemetry.Reading{}, false, alert.DefaultThresholds(), now)
	if s.HasReading || s.Online || s.Severity != alert.SeverityNormal {
		t.Errorf("a silent station should be offline and normal: %+v", s)
	}
}

func TestNewSnapshot_missingTimestamp(t *testing.T) {
	r := telemetry.Reading{StationID: "St1", WaterLevel: telemetry.Of(100)}
	s := alert.NewSnapshot("St1", r, true, alert.DefaultThresholds(), now)
	if s.Online {
		t.Error("a reading without a timestamp can not count as online")
	}
}

func TestAggregate(t *testing.T) {
	snapshots := []alert.Snapshot{
		snap("St1", 650, 5*time.Minute),   // normal, online
		snap("St2", 750, 5*time.Minute),   // advisory, online
		snap("St3", 850, 90*time.Minute),  // alert, offline
		snap("St4", 1050, 5*time.Minute),  // critical, online
		alert.NewSnapshot("St5", telemetry.Reading{}, false, alert.DefaultThresholds(), now), // silent
	}

	sum := alert.Aggregate(snapshots, 5, now)

	want := alert.Summary{
		Highest:           alert.SeverityCritical,
		HighestCount:      1,
		CriticalCount:     1,
		AlertCount:        1,
		AdvisoryCount:     1,
		NormalCount:       2,
		AttentionStations: []string{"St3", "St4"},
		OfflineStations:   []string{"St3", "St5"},
		OnlineCount:       3,
		TotalStations:     5,
		RainForecast:      alert.RainUnknown,
		UpdatedAt:         now,
	}

	if diff := cmp.Diff(want, sum); diff != "" {
		t.Errorf("unexpected summary:\n%s", diff)
	}
}

func TestAggregate_bucketsPartition(t *testing.T) {
	snapshots := []alert.Snapshot{
		snap("St1", 0, time.Minute),
		snap("St2", 700, time.Minute),
		snap("St3", 800, time.Minute),
		snap("St4", 900, time.Minute),
		snap("St5", 1000, time.Minute),
	}

	sum := alert.Aggregate(snapshots, 5, now)

	total := sum.NormalCount + sum.AdvisoryCount + sum.AlertCount + sum.WarningCount + sum.CriticalCount
	if total != len(snapshots) {
		t.Errorf("bucket sizes should sum to %d but got %d", len(snapshots), total)
	}
}

func TestSummary_HighestSeverity(t *testing.T) {
	tests := []struct {
		Name    string
		Summary alert.Summary
		Want    alert.Severity
		Count   int
	}{
		{"all_empty", alert.Summary{}, alert.SeverityNormal, 0},
		{"advisory_only", alert.Summary{AdvisoryCount: 3}, alert.SeverityAdvisory, 3},
		{"warning_beats_alert", alert.Summary{AlertCount: 2, WarningCount: 1}, alert.SeverityWarning, 1},
		{"critical_always_wins", alert.Summary{AdvisoryCount: 4, AlertCount: 3, WarningCount: 2, CriticalCount: 1}, alert.SeverityCritical, 1},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			sev, count := tt.Summary.HighestSeverity()
			if sev != tt.Want || count != tt.Count {
				t.Errorf("expected %s/%d but got %s/%d", tt.Want, tt.Count, sev, count)
			}
		})
	}
}

func TestAggregate_rainForecast(t *testing.T) {
	mk := func(id string, rain float64) alert.Snapshot {
		r := telemetry.Reading{StationID: id, Time: now, HourlyRain: telemetry.Of(rain)}
		return alert.NewSnapshot(id, r, true, alert.DefaultThresholds(), now)
	}

	// mean of 10 and 30 is 20 mm/h: moderate
	sum := alert.Aggregate([]alert.Snapshot{mk("St1", 10), mk("St2", 30)}, 5, now)
	if sum.RainForecast != alert.RainModerate {
		t.Errorf("expected moderate forecast but got %s", sum.RainForecast)
	}
}
