package alert_test

import (
	"testing"

	"github.com/agos-monitor/agos/internal/alert"
)

func TestSeverity_order(t *testing.T) {
	order := []alert.Severity{
		alert.SeverityNormal,
		alert.SeverityAdvisory,
		alert.SeverityAlert,
		alert.SeverityWarning,
		alert.SeverityCritical,
	}

	for i := 1; i < len(order); i++ {
		if !(order[i-1] < order[i]) {
			t.Errorf("%s should sort below %s", order[i-1], order[i])
		}
	}
}

func TestSeverity_roundTrip(t *testing.T) {
	tests := []struct {
		Severity alert.Severity
		String   string
	}{
		{alert.SeverityNormal, "NORMAL"},
		{alert.SeverityAdvisory, "ADVISORY"},
		{alert.SeverityAlert, "ALERT"},
		{alert.SeverityWarning, "WARNING"},
		{alert.SeverityCritical, "CRITICAL"},
	}

	for _, tt := range tests {
		t.Run(tt.String, func(t *testing.T) {
			if tt.Severity.String() != tt.String {
				t.Errorf("expected %#v but got %#v", tt.String, tt.Severity.String())
			}
			if got := alert.ParseSeverity(tt.String); got != tt.Severity {
				t.Errorf("expected %d but got %d", tt.Severity, got)
			}
		})
	}

	if got := alert.ParseSeverity("CATASTROPHIC"); got != alert.SeverityNormal {
		t.Errorf("unsupported severity should parse as NORMAL but got %s", got)
	}
}

func TestSeverity_NeedsAttention(t *testing.T) {
	tests := []struct {
		Severity alert.Severity
		Want     bool
	}{
		{alert.SeverityNormal, false},
		{alert.SeverityAdvisory, false},
		{alert.SeverityAlert, true},
		{alert.SeverityWarning, true},
		{alert.SeverityCritical, true},
	}

	for _, tt := range tests {
		if tt.Severity.NeedsAttention() != tt.Want {
			t.Errorf("%s: expected NeedsAttention=%v", tt.Severity, tt.Want)
		}
	}
}
