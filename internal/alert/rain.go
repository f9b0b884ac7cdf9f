package alert

import "github.com/agos-monitor/agos/internal/telemetry"

const (
	// RainUnknown means no rainfall data is available.
	RainUnknown RainLevel = iota

	RainNone
	RainLight
	RainModerate
	RainHeavy
)

// Rainfall intensity boundaries in mm/hour, per PAGASA advisories.
const (
	RainfallLight    = 5.0
	RainfallModerate = 15.0
	RainfallHeavy    = 30.0
)

// RainLevel is the rainfall intensity classification used by the forecast
// card and the precipitation chart.
type RainLevel int8

// ClassifyRain maps an hourly rainfall measurement to its intensity.
func ClassifyRain(v telemetry.Float) RainLevel {
	if !v.Valid {
		return RainUnknown
	}

	switch {
	case v.Value >= RainfallHeavy:
		return RainHeavy
	case v.Value >= RainfallModerate:
		return RainModerate
	case v.Value >= RainfallLight:
		return RainLight
	default:
		return RainNone
	}
}

// String is make RainLevel a string
func (l RainLevel) String() string {
	switch l {
	case RainNone:
		return "none"
	case RainLight:
		return "light"
	case RainModerate:
		return "moderate"
	case RainHeavy:
		return "heavy"
	default:
		return "no_data"
	}
}

// MarshalText is marshal RainLevel as text
func (l RainLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText is unmarshal text as RainLevel
//
// This function always returns nil.
// Unsupported values parse as RainUnknown instead of returning an error.
func (l *RainLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*l = RainNone
	case "light":
		*l = RainLight
	case "moderate":
		*l = RainModerate
	case "heavy":
		*l = RainHeavy
	default:
		*l = RainUnknown
	}
	return nil
}
