// Package series turns a day of raw readings into the hourly chart series
// the dashboard draws: 24 one-hour buckets per station, each holding the
// mean of its in-bucket readings and a classification of that mean.
package series

import (
	"fmt"
	"math"
	"time"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/station"
	"github.com/agos-monitor/agos/internal/telemetry"
)

const (
	// labelEvery controls which buckets carry an x-axis label.
	labelEvery = 2

	// Water levels outside this range are sensor noise, not data.
	minValidWaterLevel = 0.0
	maxValidWaterLevel = 15.0
)

// WaterPoint is one hourly bucket of the water level chart.
type WaterPoint struct {
	Label     string         `json:"label"`
	Value     float64        `json:"y"`
	Severity  alert.Severity `json:"alert_level"`
	Day       string         `json:"day"`
	Timestamp time.Time      `json:"timestamp"`
	Count     int            `json:"count"`
	ShowLabel bool           `json:"show_label"`
}

// RainPoint is one hourly bucket of the precipitation chart.
type RainPoint struct {
	Label     string          `json:"label"`
	Value     float64         `json:"y"`
	Intensity alert.RainLevel `json:"intensity"`
	Day       string          `json:"day"`
	Timestamp time.Time       `json:"timestamp"`
	Count     int             `json:"count"`
	ShowLabel bool            `json:"show_label"`
}

// DisplayDate picks the date the charts should show when the caller did not
// ask for one: the day of the newest reading, or today if the feed carried
// no usable timestamp.
func DisplayDate(readings []telemetry.Reading, now time.Time) time.Time {
	latest := time.Time{}
	for _, r := range readings {
		if r.Time.After(latest) {
			latest = r.Time
		}
	}
	if latest.IsZero() {
		return now
	}
	return latest
}

// DateRange returns the earliest and latest timestamps in the feed.
// ok is false when no reading carries a timestamp.
func DateRange(readings []telemetry.Reading) (earliest, latest time.Time, ok bool) {
	for _, r := range readings {
		if r.Time.IsZero() {
			continue
		}
		if !ok || r.Time.Before(earliest) {
			earliest = r.Time
		}
		if !ok || r.Time.After(latest) {
			latest = r.Time
		}
		ok = true
	}
	return earliest, latest, ok
}

// WaterLevels builds the 24-bucket water level series for every fleet
// station on the given day.
func WaterLevels(readings []telemetry.Reading, fleet station.Fleet, thresholds alert.Thresholds, day time.Time) map[string][]WaterPoint {
	buckets := groupByHour(readings, fleet, day, func(r telemetry.Reading) (float64, bool) {
		if !r.WaterLevel.Valid {
			return 0, false
		}
		v := r.WaterLevel.Value
		if v < minValidWaterLevel || v > maxValidWaterLevel {
			return 0, false
		}
		return v, true
	})

	out := make(map[string][]WaterPoint, len(fleet))
	for _, st := range fleet {
		points := make([]WaterPoint, 24)
		for hour := 0; hour < 24; hour++ {
			avg, count := mean(buckets[st.ID][hour])
			avg = round(avg, 2)
			points[hour] = WaterPoint{
				Label:     TimeLabel(hour),
				Value:     avg,
				Severity:  thresholds.Classify(telemetry.Of(avg)),
				Day:       "Today",
				Timestamp: hourStart(day, hour),
				Count:     count,
				ShowLabel: hour%labelEvery == 0,
			}
		}
		out[st.ID] = points
	}
	return out
}

// Precipitation builds the 24-bucket rainfall series for every fleet
// station on the given day. Negative rainfall is sensor noise and skipped.
func Precipitation(readings []telemetry.Reading, fleet station.Fleet, day time.Time) map[string][]RainPoint {
	buckets := groupByHour(readings, fleet, day, func(r telemetry.Reading) (float64, bool) {
		if !r.HourlyRain.Valid || r.HourlyRain.Value < 0 {
			return 0, false
		}
		return r.HourlyRain.Value, true
	})

	out := make(map[string][]RainPoint, len(fleet))
	for _, st := range fleet {
		points := make([]RainPoint, 24)
		for hour := 0; hour < 24; hour++ {
			avg, count := mean(buckets[st.ID][hour])
			avg = round(avg, 1)
			points[hour] = RainPoint{
				Label:     TimeLabel(hour),
				Value:     avg,
				Intensity: alert.ClassifyRain(telemetry.Of(avg)),
				Day:       "Today",
				Timestamp: hourStart(day, hour),
				Count:     count,
				ShowLabel: hour%labelEvery == 0,
			}
		}
		out[st.ID] = points
	}
	return out
}

// WaterStats summarizes one station's water level series for the chart
// header.
type WaterStats struct {
	Average float64 `json:"average_level"`
	Max     float64 `json:"max_level"`
	Min     float64 `json:"min_level"`

	Highest alert.Severity `json:"highest_alert_level"`

	CriticalIntervals int `json:"critical_intervals"`
	WarningIntervals  int `json:"warning_intervals"`
	AlertIntervals    int `json:"alert_intervals"`
	TotalIntervals    int `json:"total_intervals"`
}

// Summarize computes the header statistics over a water level series.
func Summarize(points []WaterPoint) WaterStats {
	if len(points) == 0 {
		return WaterStats{}
	}

	stats := WaterStats{
		Max:            points[0].Value,
		Min:            points[0].Value,
		TotalIntervals: len(points),
	}

	total := 0.0
	for _, p := range points {
		total += p.Value
		stats.Max = math.Max(stats.Max, p.Value)
		stats.Min = math.Min(stats.Min, p.Value)

		switch p.Severity {
		case alert.SeverityCritical:
			stats.CriticalIntervals++
		case alert.SeverityWarning:
			stats.WarningIntervals++
		case alert.SeverityAlert:
			stats.AlertIntervals++
		}
		if p.Severity > stats.Highest {
			stats.Highest = p.Severity
		}
	}
	stats.Average = round(total/float64(len(points)), 2)

	return stats
}

// TimeLabel renders an hour of day the way the chart axis shows it,
// e.g. "12 AM", "3 PM".
func TimeLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// groupByHour collects the valid metric values of each fleet station into
// the 24 hourly buckets of the target day.
func groupByHour(readings []telemetry.Reading, fleet station.Fleet, day time.Time, value func(telemetry.Reading) (float64, bool)) map[string][24][]float64 {
	feedToCanonical := make(map[string]string)
	for _, st := range fleet {
		for _, id := range st.FeedIDs {
			feedToCanonical[id] = st.ID
		}
	}

	start := hourStart(day, 0)
	end := start.Add(24 * time.Hour)

	tmp := make(map[string]*[24][]float64, len(fleet))
	for _, st := range fleet {
		tmp[st.ID] = &[24][]float64{}
	}

	for _, r := range readings {
		id, tracked := feedToCanonical[r.StationID]
		if !tracked || r.Time.IsZero() {
			continue
		}
		if r.Time.Before(start) || !r.Time.Before(end) {
			continue
		}

		v, ok := value(r)
		if !ok {
			continue
		}

		hour := r.Time.Sub(start) / time.Hour
		tmp[id][hour] = append(tmp[id][hour], v)
	}

	out := make(map[string][24][]float64, len(tmp))
	for id, b := range tmp {
		out[id] = *b
	}
	return out
}

func hourStart(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

func mean(xs []float64) (avg float64, count int) {
	if len(xs) == 0 {
		return 0, 0
	}
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs)), len(xs)
}

func round(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}
