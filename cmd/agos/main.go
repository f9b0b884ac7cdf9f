package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/spf13/pflag"

	"github.com/agos-monitor/agos/internal/broadcast"
	"github.com/agos-monitor/agos/internal/config"
	"github.com/agos-monitor/agos/internal/feed"
	"github.com/agos-monitor/agos/internal/meta"
	"github.com/agos-monitor/agos/internal/monitor"
	"github.com/agos-monitor/agos/internal/scheduler"
	"github.com/agos-monitor/agos/internal/store"
)

func init() {
	feed.HTTPUserAgent = fmt.Sprintf("agos/%s telemetry sync", meta.Version)
}

type AgosCommand struct {
	OutStream io.Writer
	ErrStream io.Writer

	ListenPort   int
	ScheduleSpec string
	FeedURL      string
	OneshotMode  bool
	ShowVersion  bool
	ShowHelp     bool

	Config   config.Config
	Schedule scheduler.Schedule
}

var defaultAgosCommand = &AgosCommand{
	OutStream: os.Stdout,
	ErrStream: os.Stderr,
}

//go:embed help.txt
var helpText string

func (cmd *AgosCommand) PrintUsage(detail bool) {
	tmpl := template.Must(template.New("help.txt").Parse(helpText))
	tmpl.Execute(cmd.ErrStream, map[string]interface{}{
		"Version": meta.Version,
		"Short":   !detail,
	})
}

func (cmd *AgosCommand) ParseArgs(args []string) (exitCode int) {
	flags := pflag.NewFlagSet("agos", pflag.ContinueOnError)

	flags.IntVarP(&cmd.ListenPort, "port", "p", 9000, "HTTP listen port")
	flags.StringVarP(&cmd.ScheduleSpec, "schedule", "s", "", "Refresh schedule, as an interval (\"5m\") or a cron spec")
	flags.StringVarP(&cmd.FeedURL, "feed", "f", "", "Telemetry feed URL (overrides AGOS_FEED_URL)")
	flags.BoolVarP(&cmd.OneshotMode, "oneshot", "1", false, "Synchronize once, print the fleet status, and exit")
	flags.BoolVarP(&cmd.ShowVersion, "version", "v", false, "Show version")
	flags.BoolVarP(&cmd.ShowHelp, "help", "h", false, "Show help message")

	if err := flags.Parse(args[1:]); err != nil {
		fmt.Fprintln(cmd.ErrStream, err)
		fmt.Fprintf(cmd.ErrStream, "\nPlease see `%s -h` for more information.\n", args[0])
		return 2
	}

	if cmd.ShowVersion || cmd.ShowHelp {
		return 0
	}

	if cmd.OneshotMode && flags.Changed("port") {
		fmt.Fprintln(cmd.ErrStream, "warning: port option will ignored in the oneshot mode.")
	}

	cmd.Schedule = scheduler.DefaultSchedule
	if cmd.ScheduleSpec != "" {
		s, err := scheduler.Parse(cmd.ScheduleSpec)
		if err != nil {
			fmt.Fprintf(cmd.ErrStream, "invalid schedule: %s\n", err)
			fmt.Fprintf(cmd.ErrStream, "\nPlease see `%s -h` for more information.\n", args[0])
			return 2
		}
		cmd.Schedule = s
	}

	return 0
}

func (cmd *AgosCommand) PrintVersion() {
	fmt.Fprintf(cmd.OutStream, "Agos version %s (%s)\n", meta.Version, meta.Commit)
}

// NewMonitor assembles the synchronization pipeline from the loaded
// configuration.
func (cmd *AgosCommand) NewMonitor(s *store.Store, b *broadcast.Broadcaster) (*monitor.Monitor, error) {
	fetcher := feed.Fetcher{URL: cmd.Config.FeedURL}
	if cmd.FeedURL != "" {
		fetcher.URL = cmd.FeedURL
	}

	if cmd.Config.FeedFilter != "" {
		filter, err := feed.ParseFilter(cmd.Config.FeedFilter)
		if err != nil {
			return nil, fmt.Errorf("invalid feed filter: %w", err)
		}
		fetcher.Filter = filter
	}

	m := monitor.New(fetcher.Fetch, s, b)
	if cmd.Config.Thresholds.Validate() == nil {
		m.Thresholds = cmd.Config.Thresholds
	}
	return m, nil
}

func (cmd *AgosCommand) Run(args []string) (exitCode int) {
	if code := cmd.ParseArgs(args); code != 0 {
		return code
	}

	if cmd.ShowVersion {
		cmd.PrintVersion()
		return 0
	}

	if cmd.ShowHelp {
		cmd.PrintUsage(true)
		return 0
	}

	cmd.Config = config.Load()
	for _, warn := range cmd.Config.Warnings {
		fmt.Fprintf(cmd.ErrStream, "warning: %s\n", warn)
	}

	s := store.New(cmd.OutStream)
	b := broadcast.New()

	m, err := cmd.NewMonitor(s, b)
	if err != nil {
		fmt.Fprintln(cmd.ErrStream, err)
		return 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cmd.OneshotMode {
		exitCode = cmd.RunOneshot(ctx, m)
	} else {
		exitCode = cmd.RunServer(ctx, s, m)
	}

	healthy, _ := s.Errors()
	if exitCode == 0 && !healthy {
		return 1
	}

	return exitCode
}

func main() {
	os.Exit(defaultAgosCommand.Run(os.Args))
}
