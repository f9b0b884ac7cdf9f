package scheduler_test

import (
	"testing"

	"github.com/agos-monitor/agos/internal/scheduler"
)

func TestParseCron(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output string
		Error  string
	}{
		{"4values", "1 2 3 4", "1 2 3 4 ?", ""},
		{"5values", "1 2 3 4 5", "1 2 3 4 5", ""},
		{"spaces", "1  2 \t3 4", "1 2 3 4 ?", ""},
		{"3values", "1 2 3", "", "expected 4 to 5 fields, found 3: [1 2 3]"},
		{"@yearly", "@yearly", "0 0 1 1 ?", ""},
		{"@monthly", "@monthly", "0 0 1 * ?", ""},
		{"@weekly", "@weekly", "0 0 * * 0", ""},
		{"@daily", "@daily", "0 0 * * ?", ""},
		{"@hourly", "@hourly", "0 * * * ?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			s, err := scheduler.ParseCron(tt.Input)
			if err != nil && err.Error() != tt.Error {
				t.Fatalf("unexpected error: expected %#v but got %#v", tt.Error, err.Error())
			}
			if err == nil && tt.Error != "" {
				t.Fatalf("expected error %#v but got nil", tt.Error)
			}

			if s.String() != tt.Output {
				t.Errorf("expected %#v but got %#v", tt.Output, s.String())
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output string
		Error  bool
	}{
		{"valid", "5m", "5m0s", false},
		{"hour", "1h", "1h0m0s", false},
		{"negative", "-5m", "", true},
		{"invalid", "invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			s, err := scheduler.ParseInterval(tt.Input)
			if (err != nil) != tt.Error {
				t.Fatalf("unexpected error: %v", err)
			}
			if err == nil && s.String() != tt.Output {
				t.Errorf("expected %#v but got %#v", tt.Output, s.String())
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output string
		Error  bool
	}{
		{"interval", "5m", "5m0s", false},
		{"cron", "0 0 * * ?", "0 0 * * ?", false},
		{"daily", "@daily", "0 0 * * ?", false},
		{"invalid", "invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			s, err := scheduler.Parse(tt.Input)
			if (err != nil) != tt.Error {
				t.Fatalf("unexpected error: %v", err)
			}
			if err == nil && s.String() != tt.Output {
				t.Errorf("expected %#v but got %#v", tt.Output, s.String())
			}
		})
	}
}

func TestIntervalSchedule_NeedKickWhenStart(t *testing.T) {
	s, _ := scheduler.ParseInterval("5m")
	if !s.NeedKickWhenStart() {
		t.Error("IntervalSchedule should need kick when start")
	}
}

func TestCronSchedule_NeedKickWhenStart(t *testing.T) {
	s, _ := scheduler.ParseCron("0 0 * * ?")
	if s.NeedKickWhenStart() {
		t.Error("CronSchedule should not need kick when start")
	}
}

func TestDefaultSchedule(t *testing.T) {
	if scheduler.DefaultSchedule.String() != "5m0s" {
		t.Errorf("unexpected default schedule: %s", scheduler.DefaultSchedule.String())
	}
}
