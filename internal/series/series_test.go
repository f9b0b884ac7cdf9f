package series_test

import (
	"testing"
	"time"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/series"
	"github.com/agos-monitor/agos/internal/station"
	"github.com/agos-monitor/agos/internal/telemetry"
)

var day = time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func water(id string, t time.Time, level float64) telemetry.Reading {
	return telemetry.Reading{StationID: id, Time: t, WaterLevel: telemetry.Of(level)}
}

func rain(id string, t time.Time, mm float64) telemetry.Reading {
	return telemetry.Reading{StationID: id, Time: t, HourlyRain: telemetry.Of(mm)}
}

func TestWaterLevels(t *testing.T) {
	fleet := station.DefaultFleet()
	readings := []telemetry.Reading{
		water("St1", at(10, 0), 4.0),
		water("St1", at(10, 30), 6.0),
		water("St1", at(11, 15), 2.5),
		water("St2", at(10, 5), 3.0),
	}

	got := series.WaterLevels(readings, fleet, alert.DefaultThresholds(), day)

	if len(got) != len(fleet) {
		t.Fatalf("expected a series per fleet station but got %d", len(got))
	}
	for id, points := range got {
		if len(points) != 24 {
			t.Fatalf("station %s: expected 24 buckets but got %d", id, len(points))
		}
	}

	st1 := got["St1"]
	if st1[10].Value != 5.0 || st1[10].Count != 2 {
		t.Errorf("bucket 10: expected avg 5.0 of 2 readings but got %v of %d", st1[10].Value, st1[10].Count)
	}
	if st1[11].Value != 2.5 || st1[11].Count != 1 {
		t.Errorf("bucket 11: expected 2.5 of 1 but got %v of %d", st1[11].Value, st1[11].Count)
	}
	if st1[9].Count != 0 || st1[9].Value != 0 {
		t.Errorf("an empty bucket should be zero: %+v", st1[9])
	}

	if got["St3"][10].Count != 0 {
		t.Error("a silent station should get an all-empty series")
	}
}

func TestWaterLevels_rejectsNoise(t *testing.T) {
	fleet := station.DefaultFleet()
	readings := []telemetry.Reading{
		water("St1", at(8, 0), -1.0),   // below the valid range
		water("St1", at(8, 10), 99.0),  // above the valid range
		water("St1", at(8, 20), 7.0),   // fine
		water("St1", at(8, 30), 1200),  // telemetry glitch far out of range
	}

	got := series.WaterLevels(readings, fleet, alert.DefaultThresholds(), day)

	bucket := got["St1"][8]
	if bucket.Count != 1 || bucket.Value != 7.0 {
		t.Errorf("expected only the in-range reading but got %+v", bucket)
	}
}

func TestWaterLevels_otherDaysExcluded(t *testing.T) {
	fleet := station.DefaultFleet()
	readings := []telemetry.Reading{
		water("St1", at(5, 0).AddDate(0, 0, -1), 4.0),
		water("St1", at(5, 0).AddDate(0, 0, 1), 4.0),
		water("St1", at(5, 0), 6.0),
	}

	got := series.WaterLevels(readings, fleet, alert.DefaultThresholds(), day)

	if bucket := got["St1"][5]; bucket.Count != 1 || bucket.Value != 6.0 {
		t.Errorf("only the target day's readings belong in a bucket: %+v", bucket)
	}
}

func TestPrecipitation(t *testing.T) {
	fleet := station.DefaultFleet()
	readings := []telemetry.Reading{
		rain("St2", at(14, 0), 10.0),
		rain("St2", at(14, 45), 40.0),
		rain("St2", at(15, 0), -3.0), // sensor noise
	}

	got := series.Precipitation(readings, fleet, day)

	bucket := got["St2"][14]
	if bucket.Value != 25.0 || bucket.Count != 2 {
		t.Errorf("expected avg 25.0 of 2 but got %v of %d", bucket.Value, bucket.Count)
	}
	if bucket.Intensity != alert.RainModerate {
		t.Errorf("expected moderate intensity but got %s", bucket.Intensity)
	}

	if got["St2"][15].Count != 0 {
		t.Error("negative rainfall should be dropped")
	}
}

func TestTimeLabel(t *testing.T) {
	tests := []struct {
		Hour  int
		Label string
	}{
		{0, "12 AM"},
		{1, "1 AM"},
		{11, "11 AM"},
		{12, "12 PM"},
		{13, "1 PM"},
		{23, "11 PM"},
	}

	for _, tt := range tests {
		if got := series.TimeLabel(tt.Hour); got != tt.Label {
			t.Errorf("hour %d: expected %#v but got %#v", tt.Hour, tt.Label, got)
		}
	}
}

func TestWaterLevels_labels(t *testing.T) {
	got := series.WaterLevels(nil, station.DefaultFleet(), alert.DefaultThresholds(), day)

	for hour, p := range got["St1"] {
		want := hour%2 == 0
		if p.ShowLabel != want {
			t.Errorf("hour %d: expected ShowLabel=%v but got %v", hour, want, p.ShowLabel)
		}
	}
}

func TestSummarize(t *testing.T) {
	points := []series.WaterPoint{
		{Value: 2.0, Severity: alert.SeverityNormal},
		{Value: 8.0, Severity: alert.SeverityWarning},
		{Value: 5.0, Severity: alert.SeverityAlert},
	}

	stats := series.Summarize(points)

	if stats.Average != 5.0 || stats.Max != 8.0 || stats.Min != 2.0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.Highest != alert.SeverityWarning {
		t.Errorf("expected warning as highest but got %s", stats.Highest)
	}
	if stats.WarningIntervals != 1 || stats.AlertIntervals != 1 || stats.CriticalIntervals != 0 {
		t.Errorf("unexpected interval counts: %+v", stats)
	}
	if stats.TotalIntervals != 3 {
		t.Errorf("expected 3 intervals but got %d", stats.TotalIntervals)
	}

	if empty := series.Summarize(nil); empty != (series.WaterStats{}) {
		t.Errorf("an empty series should summarize to zero: %+v", empty)
	}
}

func TestDisplayDate(t *testing.T) {
	now := time.Date(2023, 9, 1, 12, 0, 0, 0, time.UTC)

	if got := series.DisplayDate(nil, now); !got.Equal(now) {
		t.Errorf("an empty feed should fall back to now, got %s", got)
	}

	readings := []telemetry.Reading{
		water("St1", at(9, 0), 1),
		water("St2", at(17, 30), 1),
		{StationID: "St3"}, // no timestamp
	}
	if got := series.DisplayDate(readings, now); !got.Equal(at(17, 30)) {
		t.Errorf("expected the newest reading's time but got %s", got)
	}
}

func TestDateRange(t *testing.T) {
	if _, _, ok := series.DateRange(nil); ok {
		t.Error("an empty feed has no date range")
	}
	if _, _, ok := series.DateRange([]telemetry.Reading{{StationID: "St1"}}); ok {
		t.Error("a feed with no timestamps has no date range")
	}

	readings := []telemetry.Reading{
		water("St1", at(9, 0), 1),
		water("St2", at(17, 30), 1),
		water("St3", at(3, 15), 1),
	}

	earliest, latest, ok := series.DateRange(readings)
	if !ok {
		t.Fatal("expected a date range")
	}
	if !earliest.Equal(at(3, 15)) || !latest.Equal(at(17, 30)) {
		t.Errorf("unexpected range: %s to %s", earliest, latest)
	}
}
