package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"jobportal/internal/shared/metrics"
	"jobportal/internal/shared/telemetry"
)

const (
	httpTimeout    = 15 * time.Second
	defaultTimeout = 10 * time.Second
	maxQuerySkills = 3
	maxResults     = 10
	maxBodyBytes   = 8 << 20
)

var (
	// ErrMissingCredentials means the source has no API credentials configured.
	ErrMissingCredentials = errors.New("job source credentials not configured")
	// ErrUnexpectedStatus wraps non-200 responses from a job source.
	ErrUnexpectedStatus = errors.New("unexpected status from job source")
)

// Source fetches listings from one external job board. Fetch never fails:
// transport, status and decode errors are logged and produce an empty slice.
type Source interface {
	Name() string
	Fetch(ctx context.Context, skills []string, location string) []Job
}

// Option customizes a source at construction time.
type Option func(*sourceOptions)

type sourceOptions struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// WithBaseURL points a source at a different host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(o *sourceOptions) { o.baseURL = u }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *sourceOptions) { o.client = c }
}

// WithTimeout bounds each Fetch call.
func WithTimeout(d time.Duration) Option {
	return func(o *sourceOptions) { o.timeout = d }
}

func buildOptions(defaultBase string, opts []Option) sourceOptions {
	o := sourceOptions{
		baseURL: defaultBase,
		client:  &http.Client{Timeout: httpTimeout},
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// guard wraps a source call with a deadline, a circuit breaker, logging and metrics.
type guard struct {
	name    string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]Job]
}

func newGuard(name string, timeout time.Duration) *guard {
	settings := gobreaker.Settings{
		Name:        "jobs-" + name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A caller hanging up says nothing about the upstream's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(breaker string, from gobreaker.State, to gobreaker.State) {
			telemetry.Warn("jobs.breaker.state_change", map[string]any{
				"breaker": breaker,
				"source":  name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	}
	return &guard{
		name:    name,
		timeout: timeout,
		breaker: gobreaker.NewCircuitBreaker[[]Job](settings),
	}
}

func (g *guard) skip(reason string) []Job {
	metrics.ObserveJobSource(g.name, metrics.OutcomeSkipped, 0)
	telemetry.Info("jobs.source.skipped", map[string]any{"source": g.name, "reason": reason})
	return []Job{}
}

func (g *guard) run(ctx context.Context, call func(context.Context) ([]Job, error)) []Job {
	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	jobs, err := g.breaker.Execute(func() ([]Job, error) {
		return call(callCtx)
	})
	elapsed := time.Since(start)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = metrics.OutcomeBreakerOpen
		}
		metrics.ObserveJobSource(g.name, outcome, elapsed)
		telemetry.Error("jobs.source.failed", map[string]any{
			"source":      g.name,
			"error":       err.Error(),
			"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
		})
		return []Job{}
	}
	if jobs == nil {
		jobs = []Job{}
	}
	metrics.ObserveJobSource(g.name, metrics.OutcomeOK, elapsed)
	telemetry.Info("jobs.source.fetched", map[string]any{
		"source":      g.name,
		"count":       len(jobs),
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	})
	return jobs
}

func querySkills(skills []string) []string {
	if len(skills) > maxQuerySkills {
		return skills[:maxQuerySkills]
	}
	return skills
}

func getJSON(ctx context.Context, client *http.Client, reqURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
