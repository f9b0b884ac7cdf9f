// Package endpoint serves the agos HTTP API: the JSON surface the dashboard
// adapters read, export downloads, and plain-text status pages.
package endpoint

import (
	"net/http"

	"github.com/NYTimes/gziphandler"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/station"
)

func New(s Store, fleet station.Fleet, thresholds alert.Thresholds) http.Handler {
	m := http.NewServeMux()

	m.HandleFunc("/api/summary.json", SummaryJSONEndpoint(s))
	m.HandleFunc("/api/snapshots.json", SnapshotsJSONEndpoint(s))
	m.HandleFunc("/api/stations.json", StationsJSONEndpoint(fleet))
	m.HandleFunc("/api/readings.json", ReadingsJSONEndpoint(s))

	m.HandleFunc("/api/water-level.json", WaterLevelJSONEndpoint(s, fleet, thresholds))
	m.HandleFunc("/api/precipitation.json", PrecipitationJSONEndpoint(s, fleet))
	m.HandleFunc("/api/date-range.json", DateRangeJSONEndpoint(s))

	m.HandleFunc("/export/readings.csv", ReadingsCSVEndpoint(s, fleet))
	m.HandleFunc("/export/readings.xlsx", ReadingsXlsxEndpoint(s, fleet, thresholds))

	m.Handle("/status", http.RedirectHandler("/status.txt", http.StatusMovedPermanently))
	m.HandleFunc("/status.txt", StatusTextEndpoint(s, fleet))

	m.HandleFunc("/healthz", HealthzEndpoint(s))

	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/status.txt", http.StatusFound)
		} else {
			http.NotFound(w, r)
		}
	})

	return gziphandler.GzipHandler(m)
}

func handleError(s Store, scope string, err error) {
	if err != nil {
		s.ReportInternalError("endpoint:"+scope, err.Error())
	}
}
