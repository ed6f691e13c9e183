package lookup

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/clientregistry/backend/internal/domain/enrichment"
	"github.com/clientregistry/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PostalClient fetches addresses from ViaCEP with a single attempt
type PostalClient struct {
	*requester
	baseURL string
}

// NewPostalClient creates a postal registry client
func NewPostalClient(cfg Config, opts ...Option) (*PostalClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PostalClient{
		requester: newRequester(cfg, opts),
		baseURL:   cfg.PostalBaseURL,
	}, nil
}

// FetchPostalProfile returns the address for an 8-digit postal code.
// An "erro" flag in the payload yields a not-found error.
func (c *PostalClient) FetchPostalProfile(ctx context.Context, postalCode string) (*enrichment.PostalProfile, error) {
	start := time.Now()
	endpoint := joinURL(c.baseURL, url.PathEscape(postalCode), "json") + "/"

	status, body, err := c.get(ctx, ServicePostal, endpoint, 1)
	if err != nil {
		return nil, c.fail(ctx, start, postalCode, lookupFailed(ServicePostal, 0, err), telemetry.OutcomeFailed)
	}
	if !isSuccess(status) {
		return nil, c.fail(ctx, start, postalCode, lookupFailed(ServicePostal, status, nil), telemetry.OutcomeFailed)
	}

	var profile enrichment.PostalProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, c.fail(ctx, start, postalCode, lookupFailed(ServicePostal, 0, err), telemetry.OutcomeFailed)
	}
	if profile.NotFound {
		return nil, c.fail(ctx, start, postalCode, notFound(ServicePostal), telemetry.OutcomeNotFound)
	}

	c.metrics.RecordLookup(ctx, ServicePostal, telemetry.OutcomeSuccess, time.Since(start))
	return &profile, nil
}

func (c *PostalClient) fail(ctx context.Context, start time.Time, postalCode string, err *Error, outcome string) error {
	c.metrics.RecordLookup(ctx, ServicePostal, outcome, time.Since(start))
	c.logger.Warn("Postal code lookup failed",
		zap.String("cep", postalCode),
		zap.Error(err),
	)
	return err
}

var _ enrichment.PostalLookup = (*PostalClient)(nil)
