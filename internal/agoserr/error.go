package agoserr

import (
	"errors"
	"fmt"
)

// Kinds of failure that can happen while talking to the telemetry feed.
// Use errors.Is against these to branch on what went wrong.
var (
	ErrTimeout          = errors.New("request timed out")
	ErrHTTPStatus       = errors.New("unexpected HTTP status")
	ErrInvalidFormat    = errors.New("invalid response format")
	ErrNoMatchingData   = errors.New("no matching readings")
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// AgosError is the error type of agos.
//
// Please use errors.Is or errors.Unwrap if you want to know what kind of error is it.
type AgosError struct {
	kind    error
	from    error
	message string
}

// New creates a new AgosError.
func New(kind error, from error, format string, args ...interface{}) AgosError {
	msg := fmt.Sprintf(format, args...)
	if from != nil {
		if msg != "" {
			msg += ": "
		}
		msg += from.Error()
	}

	return AgosError{
		kind:    kind,
		from:    from,
		message: msg,
	}
}

// Error implements error interface.
func (e AgosError) Error() string {
	return e.message
}

// Unwrap implement for errors.Unwrap.
func (e AgosError) Unwrap() error {
	return e.from
}

// Is implement for errors.Is.
func (e AgosError) Is(err error) bool {
	return e.kind == err
}
