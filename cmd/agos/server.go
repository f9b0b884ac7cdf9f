package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/agos-monitor/agos/internal/endpoint"
	"github.com/agos-monitor/agos/internal/meta"
	"github.com/agos-monitor/agos/internal/monitor"
	"github.com/agos-monitor/agos/internal/scheduler"
	"github.com/agos-monitor/agos/internal/store"
)

func (cmd *AgosCommand) reportStartLog(s *store.Store, listen string) {
	s.Report(store.Record{
		Time:   time.Now(),
		Status: store.StatusHealthy,
		Source: "server",
		Message: fmt.Sprintf(
			"start Agos server on http://%s, feed=%s, schedule=%s, version=%s (%s)",
			listen, cmd.Config.FeedURL, cmd.Schedule, meta.Version, meta.Commit,
		),
	})
}

func (cmd *AgosCommand) RunServer(ctx context.Context, s *store.Store, m *monitor.Monitor) (exitCode int) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listen := fmt.Sprintf("0.0.0.0:%d", cmd.ListenPort)
	cmd.reportStartLog(s, listen)

	runner := scheduler.NewRunner(cmd.Schedule, m.Tick)
	runner.Start(ctx)
	defer runner.Stop()

	srv := &http.Server{Addr: listen, Handler: endpoint.New(s, m.Fleet, m.Thresholds)}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		runner.Stop()

		if err := srv.Shutdown(context.Background()); err != nil {
			s.ReportInternalError("endpoint", err.Error())
		}
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		s.ReportInternalError("endpoint", err.Error())
		exitCode = 1
	}
	stop()

	<-shutdownDone

	return exitCode
}
