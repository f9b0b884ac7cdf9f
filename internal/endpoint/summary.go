package endpoint

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/agos-monitor/agos/internal/station"
)

func jsonHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET")
}

// SummaryJSONEndpoint is the http.HandlerFunc for /api/summary.json.
// It serves 404 until the first synchronization cycle completes.
func SummaryJSONEndpoint(s Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, ok := s.Summary()
		if !ok {
			http.Error(w, "no data yet", http.StatusNotFound)
			return
		}

		jsonHeaders(w)
		handleError(s, "summary.json", json.NewEncoder(newFlushWriter(w)).Encode(summary))
	}
}

// SnapshotsJSONEndpoint is the http.HandlerFunc for /api/snapshots.json.
func SnapshotsJSONEndpoint(s Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonHeaders(w)
		handleError(s, "snapshots.json", json.NewEncoder(newFlushWriter(w)).Encode(s.Snapshots()))
	}
}

// StationsJSONEndpoint is the http.HandlerFunc for /api/stations.json,
// the registry the map adapter places its markers from.
func StationsJSONEndpoint(fleet station.Fleet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonHeaders(w)
		json.NewEncoder(w).Encode(fleet)
	}
}

// ReadingsJSONEndpoint is the http.HandlerFunc for /api/readings.json.
func ReadingsJSONEndpoint(s Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonHeaders(w)
		handleError(s, "readings.json", json.NewEncoder(newFlushWriter(w)).Encode(s.Readings()))
	}
}
