package endpoint

import (
	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/telemetry"
)

type Store interface {
	// Summary returns the current fleet summary; false before the first
	// completed cycle.
	Summary() (alert.Summary, bool)

	// Snapshots returns the per-station resolved state in fleet order.
	Snapshots() []alert.Snapshot

	// Readings returns the feed payload behind the current state.
	Readings() []telemetry.Reading

	// ReportInternalError reports an agos internal error.
	ReportInternalError(scope, message string)

	// Errors returns a list of internal (critical) errors.
	Errors() (healthy bool, messages []string)
}
