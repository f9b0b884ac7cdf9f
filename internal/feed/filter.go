package feed

import (
	"github.com/goccy/go-json"
	"github.com/itchyny/gojq"

	"github.com/agos-monitor/agos/internal/agoserr"
)

// Filter is a compiled jq expression applied to the raw feed payload before
// envelope decoding. Some deployments sit behind gateways that wrap the feed
// in their own envelope; a filter like ".result.readings" unwraps it without
// a code change.
type Filter struct {
	src  string
	code *gojq.Code
}

// ParseFilter compiles a jq expression into a Filter.
func ParseFilter(src string) (*Filter, error) {
	query, err := gojq.Parse(src)
	if err != nil {
		return nil, err
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, err
	}

	return &Filter{src: src, code: code}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.src
}

// Apply runs the filter over a JSON payload and returns the first result
// re-encoded as JSON. A payload the filter can not process is an
// ErrInvalidFormat.
func (f *Filter) Apply(data []byte) ([]byte, error) {
	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, agoserr.New(agoserr.ErrInvalidFormat, err, "decode payload for filter")
	}

	iter := f.code.Run(payload)

	result, ok := iter.Next()
	if !ok {
		return nil, agoserr.New(agoserr.ErrInvalidFormat, nil, "filter %q produced no output", f.src)
	}
	if err, isErr := result.(error); isErr {
		return nil, agoserr.New(agoserr.ErrInvalidFormat, err, "filter %q", f.src)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, agoserr.New(agoserr.ErrInvalidFormat, err, "encode filter output")
	}

	return out, nil
}
