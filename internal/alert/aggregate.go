package alert

import (
	"time"

	"github.com/agos-monitor/agos/internal/telemetry"
)

// OnlineWindow is how recent a station's latest reading must be for the
// station to count as online.
const OnlineWindow = 60 * time.Minute

// Snapshot is the resolved per-station state for one synchronization cycle.
// Snapshots are recomputed wholly every cycle and replaced atomically; they
// are never patched in place.
type Snapshot struct {
	StationID string `json:"station_id"`

	// Reading is the authoritative latest reading.
	// HasReading is false when the feed carried nothing for this station,
	// which is a normal state for a silent sensor.
	Reading    telemetry.Reading `json:"reading"`
	HasReading bool              `json:"has_reading"`

	Severity Severity `json:"severity"`

	// Online is true when the latest reading is inside OnlineWindow of now.
	Online bool `json:"online"`
}

// NewSnapshot resolves one station's state from its latest reading.
func NewSnapshot(stationID string, r telemetry.Reading, ok bool, thresholds Thresholds, now time.Time) Snapshot {
	s := Snapshot{
		StationID:  stationID,
		Reading:    r,
		HasReading: ok,
	}

	if !ok {
		return s
	}

	s.Severity = thresholds.Classify(r.WaterLevel)
	s.Online = !r.Time.IsZero() && now.Sub(r.Time) <= OnlineWindow

	return s
}

// Summary is the fleet-wide aggregate over all station snapshots.
// It is recomputed wholly from the snapshots every cycle; incremental
// patching would drift on stale partial updates.
type Summary struct {
	Highest      Severity `json:"highest_severity"`
	HighestCount int      `json:"highest_count"`

	CriticalCount int `json:"critical_count"`
	WarningCount  int `json:"warning_count"`
	AlertCount    int `json:"alert_count"`
	AdvisoryCount int `json:"advisory_count"`
	NormalCount   int `json:"normal_count"`

	// AttentionStations are ids of stations at alert severity or above.
	AttentionStations []string `json:"attention_stations"`
	OfflineStations   []string `json:"offline_stations"`

	OnlineCount   int `json:"online_count"`
	TotalStations int `json:"total_stations"`

	// RainForecast classifies the fleet-average hourly rainfall.
	RainForecast RainLevel `json:"rain_forecast"`

	// Stale is true when this summary was computed from a cached payload
	// because the live fetch failed.
	Stale bool `json:"stale"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Aggregate computes the fleet summary from station snapshots.
// Every snapshot lands in exactly one severity bucket.
func Aggregate(snapshots []Snapshot, totalStations int, now time.Time) Summary {
	sum := Summary{
		TotalStations: totalStations,
		UpdatedAt:     now,
	}

	rainTotal := 0.0
	rainCount := 0

	for _, snap := range snapshots {
		switch snap.Severity {
		case SeverityCritical:
			sum.CriticalCount++
		case SeverityWarning:
			sum.WarningCount++
		case SeverityAlert:
			sum.AlertCount++
		case SeverityAdvisory:
			sum.AdvisoryCount++
		default:
			sum.NormalCount++
		}

		if snap.Severity.NeedsAttention() {
			sum.AttentionStations = append(sum.AttentionStations, snap.StationID)
		}

		if snap.Online {
			sum.OnlineCount++
		} else {
			sum.OfflineStations = append(sum.OfflineStations, snap.StationID)
		}

		if snap.HasReading && snap.Reading.HourlyRain.Valid {
			rainTotal += snap.Reading.HourlyRain.Value
			rainCount++
		}
	}

	sum.Highest, sum.HighestCount = sum.HighestSeverity()

	if rainCount > 0 {
		sum.RainForecast = ClassifyRain(telemetry.Of(rainTotal / float64(rainCount)))
	}

	return sum
}

// HighestSeverity walks the buckets from critical down to advisory and
// returns the first non-empty one with its count. All empty means normal.
func (s Summary) HighestSeverity() (Severity, int) {
	for _, x := range []struct {
		severity Severity
		count    int
	}{
		{SeverityCritical, s.CriticalCount},
		{SeverityWarning, s.WarningCount},
		{SeverityAlert, s.AlertCount},
		{SeverityAdvisory, s.AdvisoryCount},
	} {
		if x.count > 0 {
			return x.severity, x.count
		}
	}

	return SeverityNormal, 0
}
