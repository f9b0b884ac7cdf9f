package endpoint

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/series"
	"github.com/agos-monitor/agos/internal/station"
)

const dateLayout = "2006-01-02"

// chartDate resolves the ?date= query parameter, falling back to the day of
// the newest reading. ok is false when the parameter is malformed and the
// response is already written.
func chartDate(s Store, w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return series.DisplayDate(s.Readings(), time.Now()), true
	}

	d, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		http.Error(w, "invalid date: expected YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, false
	}
	return d, true
}

// WaterLevelJSONEndpoint is the http.HandlerFunc for /api/water-level.json.
func WaterLevelJSONEndpoint(s Store, fleet station.Fleet, thresholds alert.Thresholds) http.HandlerFunc {
	type response struct {
		Date   string                         `json:"date"`
		Series map[string][]series.WaterPoint `json:"series"`
		Stats  map[string]series.WaterStats   `json:"stats"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := chartDate(s, w, r)
		if !ok {
			return
		}

		points := series.WaterLevels(s.Readings(), fleet, thresholds, day)

		stats := make(map[string]series.WaterStats, len(points))
		for id, ps := range points {
			stats[id] = series.Summarize(ps)
		}

		jsonHeaders(w)
		handleError(s, "water-level.json", json.NewEncoder(newFlushWriter(w)).Encode(response{
			Date:   day.Format(dateLayout),
			Series: points,
			Stats:  stats,
		}))
	}
}

// PrecipitationJSONEndpoint is the http.HandlerFunc for /api/precipitation.json.
func PrecipitationJSONEndpoint(s Store, fleet station.Fleet) http.HandlerFunc {
	type response struct {
		Date   string                        `json:"date"`
		Series map[string][]series.RainPoint `json:"series"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := chartDate(s, w, r)
		if !ok {
			return
		}

		jsonHeaders(w)
		handleError(s, "precipitation.json", json.NewEncoder(newFlushWriter(w)).Encode(response{
			Date:   day.Format(dateLayout),
			Series: series.Precipitation(s.Readings(), fleet, day),
		}))
	}
}

// DateRangeJSONEndpoint is the http.HandlerFunc for /api/date-range.json.
// It serves 404 while the feed holds no timestamped readings at all.
func DateRangeJSONEndpoint(s Store) http.HandlerFunc {
	type response struct {
		Earliest time.Time `json:"earliest"`
		Latest   time.Time `json:"latest"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		earliest, latest, ok := series.DateRange(s.Readings())
		if !ok {
			http.Error(w, "no data yet", http.StatusNotFound)
			return
		}

		jsonHeaders(w)
		handleError(s, "date-range.json", json.NewEncoder(w).Encode(response{
			Earliest: earliest,
			Latest:   latest,
		}))
	}
}
