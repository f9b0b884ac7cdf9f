package feed

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/agos-monitor/agos/internal/agoserr"
	"github.com/agos-monitor/agos/internal/telemetry"
)

// The feed has grown three envelope shapes over the years:
//
//	[ ...readings ]
//	{"success": true, "data": [ ...readings ]}
//	{"data": [ ...readings ]}
//
// DecodeEnvelope accepts exactly these and nothing else. Anything else is an
// ErrInvalidFormat, including an envelope whose success flag is false.
func DecodeEnvelope(data []byte) ([]telemetry.Reading, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, agoserr.New(agoserr.ErrInvalidFormat, nil, "empty response body")
	}

	switch data[0] {
	case '[':
		var readings []telemetry.Reading
		if err := json.Unmarshal(data, &readings); err != nil {
			return nil, agoserr.New(agoserr.ErrInvalidFormat, err, "decode readings")
		}
		return readings, nil

	case '{':
		var envelope struct {
			Success *bool           `json:"success"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, agoserr.New(agoserr.ErrInvalidFormat, err, "decode envelope")
		}

		if envelope.Success != nil && !*envelope.Success {
			return nil, agoserr.New(agoserr.ErrInvalidFormat, nil, "server reported failure")
		}
		if envelope.Data == nil {
			return nil, agoserr.New(agoserr.ErrInvalidFormat, nil, "envelope has no data field")
		}

		var readings []telemetry.Reading
		if err := json.Unmarshal(envelope.Data, &readings); err != nil {
			return nil, agoserr.New(agoserr.ErrInvalidFormat, err, "decode readings")
		}
		return readings, nil

	default:
		return nil, agoserr.New(agoserr.ErrInvalidFormat, nil, "response is neither an array nor an object")
	}
}
