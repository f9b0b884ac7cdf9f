package endpoint

import (
	"net/http"
	"strconv"
	textTemplate "text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/station"
	"github.com/agos-monitor/agos/internal/telemetry"
)

var statusTextTemplate = `agos fleet status{{if .Stale}} (STALE: serving cached data){{end}}
updated: {{ago .Summary.UpdatedAt}}

{{range .Stations -}}
{{.ID}}  {{printf "%-20s" .Name}}  {{printf "%-8s" .Severity}}  level={{level .Water}}  {{if .Online}}online ({{ago .Time}}){{else}}OFFLINE{{end}}
{{end}}
highest: {{.Summary.Highest}}{{if .Summary.HighestCount}} ({{.Summary.HighestCount}} stations){{end}}
online: {{.Summary.OnlineCount}}/{{.Summary.TotalStations}}
rain forecast: {{.Summary.RainForecast}}
`

var statusFuncs = textTemplate.FuncMap{
	"ago": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return humanize.Time(t)
	},
	"level": func(f telemetry.Float) string {
		if !f.Valid {
			return "-"
		}
		return strconv.FormatFloat(f.Value, 'f', -1, 64)
	},
}

// StatusTextEndpoint is the http.HandlerFunc for /status.txt page.
func StatusTextEndpoint(s Store, fleet station.Fleet) http.HandlerFunc {
	tmpl := textTemplate.Must(textTemplate.New("status.txt").Funcs(statusFuncs).Parse(statusTextTemplate))

	type stationLine struct {
		ID       string
		Name     string
		Severity alert.Severity
		Water    telemetry.Float
		Time     time.Time
		Online   bool
	}

	return func(w http.ResponseWriter, r *http.Request) {
		summary, ok := s.Summary()
		if !ok {
			http.Error(w, "no data yet", http.StatusNotFound)
			return
		}

		var stations []stationLine
		for _, snap := range s.Snapshots() {
			stations = append(stations, stationLine{
				ID:       snap.StationID,
				Name:     fleet.Name(snap.StationID),
				Severity: snap.Severity,
				Water:    snap.Reading.WaterLevel,
				Time:     snap.Reading.Time,
				Online:   snap.Online,
			})
		}

		w.Header().Set("Content-Type", "text/plain; charset=UTF-8")

		handleError(s, "status.txt", tmpl.Execute(newFlushWriter(w), map[string]any{
			"Summary":  summary,
			"Stale":    summary.Stale,
			"Stations": stations,
		}))
	}
}
