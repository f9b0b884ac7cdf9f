package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/agos-monitor/agos/internal/agoserr"
	"github.com/agos-monitor/agos/internal/telemetry"
)

var (
	HTTPUserAgent = "agos telemetry sync"

	httpClient = &http.Client{
		Transport: &http.Transport{
			DisableKeepAlives: true,
		},
	}
)

const (
	// FetchTimeout bounds one feed request end to end.
	// The in-flight request is cancelled when it expires.
	FetchTimeout = 10 * time.Second

	// maxBodySize caps how much of a response agos is willing to read.
	maxBodySize = 16 * 1024 * 1024
)

// RetryAdvice is a server-advised retry delay carried inside a fetch error.
// Use errors.As to recover it.
type RetryAdvice struct {
	After time.Duration
}

func (a *RetryAdvice) Error() string {
	return fmt.Sprintf("server advised retry in %s", a.After)
}

// Fetcher is the gateway to the upstream telemetry feed.
// It performs one bounded-time GET and normalizes the response envelope.
// It holds no mutable state; failures never touch cache or scheduler.
type Fetcher struct {
	URL string

	// Filter is an optional payload rewrite applied before envelope
	// decoding, for deployments whose feed wraps readings in yet another
	// shape. Nil means no rewrite.
	Filter *Filter

	// Client overrides the shared HTTP client. Mostly for tests.
	Client *http.Client
}

// Fetch retrieves and decodes the current readings.
//
// Failure modes, distinguishable with errors.Is against the agoserr kinds:
// ErrTimeout, ErrHTTPStatus (with optional RetryAdvice), ErrInvalidFormat.
func (f Fetcher) Fetch(ctx context.Context) ([]telemetry.Reading, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("request telemetry feed: %w", err)
	}
	req.Header.Set("User-Agent", HTTPUserAgent)

	client := f.Client
	if client == nil {
		client = httpClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, agoserr.New(agoserr.ErrTimeout, nil, "%s: no response in %s", f.URL, FetchTimeout)
		}
		return nil, fmt.Errorf("request telemetry feed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if isTimeout(err) {
			return nil, agoserr.New(agoserr.ErrTimeout, nil, "%s: no response in %s", f.URL, FetchTimeout)
		}
		return nil, fmt.Errorf("read telemetry feed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, agoserr.New(agoserr.ErrHTTPStatus, parseRetryAdvice(body), "status %d", resp.StatusCode)
	}

	if f.Filter != nil {
		body, err = f.Filter.Apply(body)
		if err != nil {
			return nil, err
		}
	}

	return DecodeEnvelope(body)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseRetryAdvice looks for a retry_in hint in an error body like
// {"error": "...", "retry_in": 30}. Returns nil when there is none.
func parseRetryAdvice(body []byte) error {
	var payload struct {
		RetryIn float64 `json:"retry_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.RetryIn <= 0 {
		return nil
	}
	return &RetryAdvice{After: time.Duration(payload.RetryIn * float64(time.Second))}
}
