package endpoint

import (
	"fmt"
	"net/http"
	"time"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/export"
	"github.com/agos-monitor/agos/internal/station"
)

func attachment(w http.ResponseWriter, contentType, ext string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="agos-readings-%s.%s"`, time.Now().Format("20060102"), ext))
}

// ReadingsCSVEndpoint is the http.HandlerFunc for /export/readings.csv.
func ReadingsCSVEndpoint(s Store, fleet station.Fleet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attachment(w, "text/csv; charset=UTF-8", "csv")

		handleError(s, "readings.csv", export.ToCSV(newFlushWriter(w), s.Readings(), fleet))
	}
}

// ReadingsXlsxEndpoint is the http.HandlerFunc for /export/readings.xlsx.
func ReadingsXlsxEndpoint(s Store, fleet station.Fleet, thresholds alert.Thresholds) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")

		handleError(s, "readings.xlsx", export.ToXlsx(w, s.Readings(), fleet, thresholds, time.Now()))
	}
}
