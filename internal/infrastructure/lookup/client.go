package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/clientregistry/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Option customizes a registry client
type Option func(*requester)

// WithLogger sets the logger used for retry and failure messages
func WithLogger(logger *zap.Logger) Option {
	return func(r *requester) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records lookup counters and latency
func WithMetrics(m *telemetry.LookupMetrics) Option {
	return func(r *requester) {
		r.metrics = m
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(r *requester) {
		if c != nil {
			r.httpClient = c
		}
	}
}

// WithTimerFactory supplies the timer driving backoff waits. Each lookup
// call asks for a fresh timer.
func WithTimerFactory(f func() backoff.Timer) Option {
	return func(r *requester) {
		r.newTimer = f
	}
}

// requester holds what both registry clients share
type requester struct {
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
	metrics    *telemetry.LookupMetrics
	newTimer   func() backoff.Timer
}

func newRequester(cfg Config, opts []Option) *requester {
	r := &requester{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		logger:     zap.NewNop(),
	}
	if r.userAgent == "" {
		r.userAgent = DefaultUserAgent
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *requester) timer() backoff.Timer {
	if r.newTimer == nil {
		return nil
	}
	return r.newTimer()
}

// get issues one GET and returns the status code and a size-limited body.
// Each attempt gets its own client span.
func (r *requester) get(ctx context.Context, service, rawURL string, attempt int) (int, []byte, error) {
	ctx, span := telemetry.StartSpan(ctx, "lookup."+service, trace.SpanKindClient,
		attribute.String("http.method", http.MethodGet),
		attribute.String("http.url", rawURL),
		attribute.Int("lookup.attempt", attempt),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		telemetry.RecordError(span, err)
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func joinURL(base string, parts ...string) string {
	return strings.TrimRight(base, "/") + "/" + strings.Join(parts, "/")
}
