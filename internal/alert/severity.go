package alert

const (
	// SeverityNormal means the measurement is below every configured boundary.
	// Nothing to do on this severity.
	SeverityNormal Severity = iota

	// SeverityAdvisory means the water level reached the advisory boundary.
	// Residents should stay informed.
	SeverityAdvisory

	// SeverityAlert means the water level reached the alert boundary.
	// The situation should be monitored closely.
	SeverityAlert

	// SeverityWarning means the water level reached the warning boundary.
	// Residents should prepare for evacuation.
	SeverityWarning

	// SeverityCritical means the water level reached the critical boundary.
	// Immediate evacuation is required.
	SeverityCritical
)

// Severity is the ordered classification of a station measurement.
// The order is total and must never change:
// normal < advisory < alert < warning < critical.
type Severity int8

// ParseSeverity parses a severity string.
//
// If passed unsupported severity, it will returns SeverityNormal.
func ParseSeverity(raw string) Severity {
	switch raw {
	case "ADVISORY":
		return SeverityAdvisory
	case "ALERT":
		return SeverityAlert
	case "WARNING":
		return SeverityWarning
	case "CRITICAL":
		return SeverityCritical
	default:
		return SeverityNormal
	}
}

// UnmarshalText is unmarshal text as severity
//
// This function always returns nil.
// This parses as SeverityNormal instead of returns error if unsupported severity passed.
func (s *Severity) UnmarshalText(text []byte) error {
	*s = ParseSeverity(string(text))
	return nil
}

// String is make Severity a string
func (s Severity) String() string {
	switch s {
	case SeverityAdvisory:
		return "ADVISORY"
	case SeverityAlert:
		return "ALERT"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "NORMAL"
	}
}

// MarshalText is marshal Severity as text
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NeedsAttention reports whether a station at this severity belongs on the
// attention list. Advisory does not qualify.
func (s Severity) NeedsAttention() bool {
	return s >= SeverityAlert
}
