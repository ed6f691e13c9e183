package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/clientregistry/backend/internal/domain/enrichment"
	"github.com/clientregistry/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var errRateLimited = errors.New("lookup: rate limited")

// TaxIDClient fetches company profiles from cnpj.ws. A 429 response is
// retried with exponential backoff; every other failure is final.
type TaxIDClient struct {
	*requester
	baseURL      string
	maxRetries   int
	initialDelay time.Duration
}

// NewTaxIDClient creates a tax-ID registry client
func NewTaxIDClient(cfg Config, opts ...Option) (*TaxIDClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TaxIDClient{
		requester:    newRequester(cfg, opts),
		baseURL:      cfg.TaxIDBaseURL,
		maxRetries:   cfg.MaxRetries,
		initialDelay: cfg.InitialDelay,
	}, nil
}

// policy waits initialDelay, 2*initialDelay, 4*initialDelay, ... for at most
// maxRetries retries.
func (c *TaxIDClient) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialDelay
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = c.initialDelay << uint(c.maxRetries)
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)
}

// FetchTaxIDProfile returns the raw registry profile for a 14-digit tax ID.
// The caller guarantees the format.
func (c *TaxIDClient) FetchTaxIDProfile(ctx context.Context, taxID string) (*enrichment.TaxIDProfile, error) {
	start := time.Now()
	endpoint := joinURL(c.baseURL, "cnpj", url.PathEscape(taxID))

	var body []byte
	attempt := 0
	operation := func() error {
		attempt++
		status, b, err := c.get(ctx, ServiceTaxID, endpoint, attempt)
		switch {
		case err != nil:
			return backoff.Permanent(lookupFailed(ServiceTaxID, 0, err))
		case status == http.StatusTooManyRequests:
			return errRateLimited
		case !isSuccess(status):
			return backoff.Permanent(lookupFailed(ServiceTaxID, status, nil))
		}
		body = b
		return nil
	}
	notify := func(_ error, wait time.Duration) {
		c.metrics.RecordRetry(ctx, ServiceTaxID)
		c.logger.Warn("Tax ID registry rate limited, retrying",
			zap.String("cnpj", taxID),
			zap.Int("attempt", attempt),
			zap.Duration("delay", wait),
		)
	}

	err := backoff.RetryNotifyWithTimer(operation, c.policy(ctx), notify, c.timer())
	if err != nil {
		outcome := telemetry.OutcomeFailed
		var lerr *Error
		switch {
		case errors.Is(err, errRateLimited):
			outcome = telemetry.OutcomeRateLimited
			lerr = lookupFailed(ServiceTaxID, http.StatusTooManyRequests, nil)
		case errors.As(err, &lerr):
		default:
			// context cancelled while waiting between retries
			lerr = lookupFailed(ServiceTaxID, 0, err)
		}
		c.metrics.RecordLookup(ctx, ServiceTaxID, outcome, time.Since(start))
		c.logger.Warn("Tax ID lookup failed",
			zap.String("cnpj", taxID),
			zap.Int("attempts", attempt),
			zap.Error(lerr),
		)
		return nil, lerr
	}

	var profile enrichment.TaxIDProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		c.metrics.RecordLookup(ctx, ServiceTaxID, telemetry.OutcomeFailed, time.Since(start))
		return nil, lookupFailed(ServiceTaxID, 0, err)
	}

	c.metrics.RecordLookup(ctx, ServiceTaxID, telemetry.OutcomeSuccess, time.Since(start))
	c.logger.Debug("Tax ID lookup succeeded", zap.String("cnpj", taxID), zap.Int("attempts", attempt))
	return &profile, nil
}

var _ enrichment.TaxIDLookup = (*TaxIDClient)(nil)
