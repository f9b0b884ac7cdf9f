package alert_test

import (
	"testing"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/telemetry"
)

func TestThresholds_Classify(t *testing.T) {
	th := alert.DefaultThresholds()

	tests := []struct {
		Name  string
		Value telemetry.Float
		Want  alert.Severity
	}{
		{"absent", telemetry.Float{}, alert.SeverityNormal},
		{"zero", telemetry.Of(0), alert.SeverityNormal},
		{"below_advisory", telemetry.Of(650), alert.SeverityNormal},
		{"at_advisory", telemetry.Of(700), alert.SeverityAdvisory},
		{"between", telemetry.Of(750), alert.SeverityAdvisory},
		{"at_alert", telemetry.Of(800), alert.SeverityAlert},
		{"at_warning", telemetry.Of(900), alert.SeverityWarning},
		{"at_critical", telemetry.Of(1000), alert.SeverityCritical},
		{"above_critical", telemetry.Of(1050), alert.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			if got := th.Classify(tt.Value); got != tt.Want {
				t.Errorf("expected %s but got %s", tt.Want, got)
			}
		})
	}
}

func TestThresholds_Classify_monotonic(t *testing.T) {
	th := alert.DefaultThresholds()

	prev := alert.SeverityNormal
	for v := 1.0; v <= 1200; v += 1 {
		got := th.Classify(telemetry.Of(v))
		if got < prev {
			t.Fatalf("classification is not monotonic: classify(%v)=%s after %s", v, got, prev)
		}
		prev = got
	}
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		Name       string
		Thresholds alert.Thresholds
		Error      bool
	}{
		{"default", alert.DefaultThresholds(), false},
		{"custom", alert.Thresholds{Advisory: 1, Alert: 2, Warning: 3, Critical: 4}, false},
		{"descending", alert.Thresholds{Advisory: 4, Alert: 3, Warning: 2, Critical: 1}, true},
		{"equal_boundaries", alert.Thresholds{Advisory: 700, Alert: 700, Warning: 900, Critical: 1000}, true},
		{"zero", alert.Thresholds{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			err := tt.Thresholds.Validate()
			if (err != nil) != tt.Error {
				t.Errorf("unexpected validation result: %v", err)
			}
		})
	}
}

func TestClassifyRain(t *testing.T) {
	tests := []struct {
		Name  string
		Value telemetry.Float
		Want  alert.RainLevel
	}{
		{"absent", telemetry.Float{}, alert.RainUnknown},
		{"dry", telemetry.Of(0), alert.RainNone},
		{"drizzle", telemetry.Of(4.9), alert.RainNone},
		{"light", telemetry.Of(5), alert.RainLight},
		{"moderate", telemetry.Of(15), alert.RainModerate},
		{"heavy", telemetry.Of(30), alert.RainHeavy},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			if got := alert.ClassifyRain(tt.Value); got != tt.Want {
				t.Errorf("expected %s but got %s", tt.Want, got)
			}
		})
	}
}
