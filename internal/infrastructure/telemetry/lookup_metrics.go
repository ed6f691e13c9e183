package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Lookup outcomes used as metric labels
const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeRateLimited = "rate_limited"
	OutcomeFailed      = "failed"
)

// LookupMetrics instruments the outbound registry lookups.
// A nil *LookupMetrics records nothing.
type LookupMetrics struct {
	requests *Counter
	retries  *Counter
	duration *Histogram
}

// NewLookupMetrics creates the lookup instruments on meter.
func NewLookupMetrics(meter metric.Meter) (*LookupMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	requests, err := NewCounter(meter,
		"lookup_requests_total",
		"Registry lookups by service and outcome",
		"{lookup}",
	)
	if err != nil {
		return nil, err
	}

	retries, err := NewCounter(meter,
		"lookup_retries_total",
		"Registry lookups retried after a rate-limit response",
		"{retry}",
	)
	if err != nil {
		return nil, err
	}

	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "lookup_duration_seconds",
		Description: "Registry lookup latency including backoff waits",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &LookupMetrics{
		requests: requests,
		retries:  retries,
		duration: duration,
	}, nil
}

// RecordLookup records one finished lookup call.
func (m *LookupMetrics) RecordLookup(ctx context.Context, service, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.Inc(ctx, AttrLookupService.String(service), AttrLookupOutcome.String(outcome))
	m.duration.RecordDuration(ctx, d, AttrLookupService.String(service))
}

// RecordRetry records a backoff retry.
func (m *LookupMetrics) RecordRetry(ctx context.Context, service string) {
	if m == nil {
		return
	}
	m.retries.Inc(ctx, AttrLookupService.String(service))
}
