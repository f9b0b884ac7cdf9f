package alert

import (
	"fmt"

	"github.com/agos-monitor/agos/internal/telemetry"
)

// Thresholds is the ascending water level boundary table, in centimeters.
// Every severity above normal has a boundary; a measurement that meets or
// exceeds a boundary is at least that severe.
type Thresholds struct {
	Advisory float64 `json:"advisory"`
	Alert    float64 `json:"alert"`
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

// DefaultThresholds returns the PAGASA-based default boundary table.
// It is used whenever configuration is absent or malformed.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Advisory: 700,
		Alert:    800,
		Warning:  900,
		Critical: 1000,
	}
}

// Validate checks the ascending invariant advisory < alert < warning < critical.
func (t Thresholds) Validate() error {
	if !(t.Advisory < t.Alert && t.Alert < t.Warning && t.Warning < t.Critical) {
		return fmt.Errorf("thresholds must ascend: advisory=%v alert=%v warning=%v critical=%v", t.Advisory, t.Alert, t.Warning, t.Critical)
	}
	return nil
}

// Classify maps a water level measurement to its severity.
//
// An absent or zero value classifies as normal; a sensor that reports
// nothing is not in danger, it is just silent. Otherwise the boundaries are
// compared from highest to lowest and the highest one met wins.
//
// Classify is a pure function and safe for concurrent use.
func (t Thresholds) Classify(v telemetry.Float) Severity {
	if !v.Valid || v.Value == 0 {
		return SeverityNormal
	}

	switch {
	case v.Value >= t.Critical:
		return SeverityCritical
	case v.Value >= t.Warning:
		return SeverityWarning
	case v.Value >= t.Alert:
		return SeverityAlert
	case v.Value >= t.Advisory:
		return SeverityAdvisory
	default:
		return SeverityNormal
	}
}
