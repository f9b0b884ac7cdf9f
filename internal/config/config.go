// Package config reads the agos environment configuration.
//
// Settings come from the process environment, optionally seeded from a .env
// file. Anything malformed falls back to its default with a warning instead
// of refusing to start; a flood dashboard that will not boot over a typo'd
// threshold is worse than one running on defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/agos-monitor/agos/internal/alert"
)

// DefaultFeedURL is the upstream telemetry API of the station network.
const DefaultFeedURL = "https://apaw.cspc.edu.ph/apawbalatanapi/APIv1/Weather"

type Config struct {
	// FeedURL is the HTTP endpoint the synchronization cycle fetches.
	FeedURL string

	// FeedFilter is an optional jq expression applied to the raw payload
	// before envelope decoding. Empty means no filtering.
	FeedFilter string

	Thresholds alert.Thresholds

	// Warnings are the fallbacks taken while loading, for the caller to log.
	Warnings []string
}

// Load reads the configuration from a .env file (if any) and the process
// environment. It never fails over bad values; see the Warnings field.
func Load() Config {
	godotenv.Load()

	c := Config{
		FeedURL:    DefaultFeedURL,
		FeedFilter: os.Getenv("AGOS_FEED_FILTER"),
		Thresholds: alert.DefaultThresholds(),
	}

	if url := os.Getenv("AGOS_FEED_URL"); url != "" {
		c.FeedURL = url
	}

	if t, warns := loadThresholds(); len(warns) > 0 {
		c.Warnings = append(c.Warnings, warns...)
	} else {
		c.Thresholds = t
	}

	return c
}

// loadThresholds reads the threshold override table. The table is used only
// when every boundary parses and the result is strictly ascending; a partial
// override would silently shift severity meanings.
func loadThresholds() (alert.Thresholds, []string) {
	t := alert.DefaultThresholds()
	overridden := false

	var warns []string
	for _, x := range []struct {
		env   string
		value *float64
	}{
		{"AGOS_THRESHOLD_ADVISORY", &t.Advisory},
		{"AGOS_THRESHOLD_ALERT", &t.Alert},
		{"AGOS_THRESHOLD_WARNING", &t.Warning},
		{"AGOS_THRESHOLD_CRITICAL", &t.Critical},
	} {
		raw := os.Getenv(x.env)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			warns = append(warns, fmt.Sprintf("%s=%q is not a number; using the default threshold table", x.env, raw))
			continue
		}
		*x.value = v
		overridden = true
	}

	if len(warns) > 0 {
		return alert.Thresholds{}, warns
	}

	if overridden {
		if err := t.Validate(); err != nil {
			return alert.Thresholds{}, []string{fmt.Sprintf("threshold override rejected: %s; using the default threshold table", err)}
		}
	}

	return t, nil
}
