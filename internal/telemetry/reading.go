package telemetry

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Float is an optional measurement value.
//
// The upstream feed is not strict about types: the same field may arrive as a
// JSON number, a numeric string, null, or be missing entirely. Anything that
// does not parse as a number decodes as absent, never as zero.
type Float struct {
	Value float64
	Valid bool
}

// Of makes a present Float. This is mostly for tests and fixtures.
func Of(v float64) Float {
	return Float{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
//
// This function always returns nil; a malformed value is an absent value,
// not a reason to reject the whole reading.
func (f *Float) UnmarshalJSON(data []byte) error {
	*f = Float{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		var err error
		s, err = strconv.Unquote(s)
		if err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}

	f.Value = v
	f.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler. Absent values marshal as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Reading is one telemetry sample from a station.
// Readings are immutable once received.
type Reading struct {
	StationID string

	// Time is the sample time reported by the station.
	// The zero value means the feed did not carry a parseable timestamp.
	Time time.Time

	WaterLevel  Float
	HourlyRain  Float
	DailyRain   Float
	WindSpeed   Float
	Humidity    Float
	Temperature Float
}

type readingJSON struct {
	StationID     string `json:"StationID"`
	DateTime      string `json:"DateTime,omitempty"`
	DateTimeStamp string `json:"DateTimeStamp,omitempty"`
	Timestamp     string `json:"Timestamp,omitempty"`
	WaterLevel    Float  `json:"WaterLevel"`
	HourlyRain    Float  `json:"HourlyRain"`
	DailyRain     Float  `json:"DailyRain"`
	WindSpeed     Float  `json:"WindSpeed"`
	Humidity      Float  `json:"Humidity"`
	Temperature   Float  `json:"Temperature"`
}

// UnmarshalJSON implements json.Unmarshaler.
//
// The timestamp is taken from DateTime, DateTimeStamp, or Timestamp, in that
// order of preference. An unparseable timestamp leaves Time at its zero value.
func (r *Reading) UnmarshalJSON(data []byte) error {
	var raw readingJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Reading{
		StationID:   raw.StationID,
		WaterLevel:  raw.WaterLevel,
		HourlyRain:  raw.HourlyRain,
		DailyRain:   raw.DailyRain,
		WindSpeed:   raw.WindSpeed,
		Humidity:    raw.Humidity,
		Temperature: raw.Temperature,
	}

	for _, s := range []string{raw.DateTime, raw.DateTimeStamp, raw.Timestamp} {
		if t, ok := ParseTime(s); ok {
			r.Time = t
			break
		}
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Reading) MarshalJSON() ([]byte, error) {
	raw := readingJSON{
		StationID:   r.StationID,
		WaterLevel:  r.WaterLevel,
		HourlyRain:  r.HourlyRain,
		DailyRain:   r.DailyRain,
		WindSpeed:   r.WindSpeed,
		Humidity:    r.Humidity,
		Temperature: r.Temperature,
	}
	if !r.Time.IsZero() {
		raw.DateTime = r.Time.Format(time.RFC3339)
	}
	return json.Marshal(raw)
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseTime parses a feed timestamp.
//
// Station firmwares disagree about the format, so several layouts are
// accepted. A trailing "Z" on a layout without zone information is tolerated.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if strings.HasSuffix(s, "Z") {
		return ParseTime(s[:len(s)-1])
	}

	return time.Time{}, false
}
