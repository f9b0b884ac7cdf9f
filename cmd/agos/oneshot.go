package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/monitor"
)

var severityColors = map[alert.Severity]string{
	alert.SeverityNormal:   "\033[32m",
	alert.SeverityAdvisory: "\033[33m",
	alert.SeverityAlert:    "\033[93m",
	alert.SeverityWarning:  "\033[31m",
	alert.SeverityCritical: "\033[91m",
}

// colorize wraps s in the severity's ANSI color when the output is a
// terminal.
func (cmd *AgosCommand) colorize(s string, severity alert.Severity) string {
	f, ok := cmd.OutStream.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return s
	}
	return severityColors[severity] + s + "\033[0m"
}

// RunOneshot synchronizes once, prints the fleet status, and reports the
// result through the exit code: 0 when every station is below alert
// severity, 1 otherwise. Made for cron jobs and systemd timers.
func (cmd *AgosCommand) RunOneshot(ctx context.Context, m *monitor.Monitor) (exitCode int) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGHUP)
	defer stop()

	if _, err := m.Sync(ctx, monitor.LatestKey); err != nil {
		fmt.Fprintf(cmd.ErrStream, "error: %s\n", err)
		return 1
	}

	summary, ok := m.Store.Summary()
	if !ok {
		fmt.Fprintln(cmd.ErrStream, "error: no summary produced")
		return 1
	}

	for _, snap := range m.Store.Snapshots() {
		level := "-"
		if snap.Reading.WaterLevel.Valid {
			level = fmt.Sprintf("%.0f", snap.Reading.WaterLevel.Value)
		}
		state := "online"
		if !snap.Online {
			state = "offline"
		}
		fmt.Fprintf(cmd.OutStream, "%s  %-20s  %-8s  level=%-6s  %s\n",
			snap.StationID,
			m.Fleet.Name(snap.StationID),
			cmd.colorize(snap.Severity.String(), snap.Severity),
			level,
			state,
		)
	}

	fmt.Fprintf(cmd.OutStream, "\nhighest: %s  online: %d/%d  rain: %s\n",
		cmd.colorize(summary.Highest.String(), summary.Highest),
		summary.OnlineCount, summary.TotalStations,
		summary.RainForecast,
	)

	if summary.Highest.NeedsAttention() {
		return 1
	}
	return 0
}
