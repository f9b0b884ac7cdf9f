package store

import (
	"strconv"
	"strings"
	"time"
)

const (
	// StatusHealthy means the cycle completed with live data.
	StatusHealthy RecordStatus = iota

	// StatusDegraded means the live fetch failed but cached data stood in.
	StatusDegraded

	// StatusFailure means the cycle failed with nothing to fall back on.
	StatusFailure
)

// RecordStatus is the outcome class of one logged event.
type RecordStatus int8

// String is make RecordStatus a string
func (s RecordStatus) String() string {
	switch s {
	case StatusDegraded:
		return "DEGRADED"
	case StatusFailure:
		return "FAILURE"
	default:
		return "HEALTHY"
	}
}

// Record is one line in the agos activity log.
type Record struct {
	// Time is the time the event finished.
	Time time.Time

	Status RecordStatus

	Latency time.Duration

	// Source names what produced the event, e.g. "feed", "scheduler",
	// "endpoint".
	Source string

	// Message is the reason of the status, or extra information about
	// the event.
	Message string
}

func escapeMessage(s string) string {
	for _, x := range []struct {
		From string
		To   string
	}{
		{`\`, `\\`},
		{"\t", `\t`},
		{"\n", `\n`},
	} {
		s = strings.ReplaceAll(s, x.From, x.To)
	}
	return s
}

// String is make Record a string for a row in the log
func (r Record) String() string {
	return strings.Join([]string{
		r.Time.Format(time.RFC3339),
		r.Status.String(),
		strconv.FormatFloat(float64(r.Latency.Microseconds())/1000, 'f', 3, 64),
		r.Source,
		escapeMessage(r.Message),
	}, "\t")
}
