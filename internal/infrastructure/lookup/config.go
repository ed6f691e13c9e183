// Package lookup implements the tax-ID (cnpj.ws) and postal-code (ViaCEP)
// registry clients used to enrich client records.
package lookup

import (
	"errors"
	"time"
)

const (
	// DefaultTaxIDBaseURL is the public cnpj.ws API
	DefaultTaxIDBaseURL  = "https://publica.cnpj.ws"
	// DefaultPostalBaseURL is the ViaCEP web service root
	DefaultPostalBaseURL = "https://viacep.com.br/ws"

	DefaultMaxRetries   = 3
	DefaultInitialDelay = time.Second
	DefaultTimeout      = 10 * time.Second
	DefaultUserAgent    = "client-registry/1.0"

	// MaxRetriesLimit bounds MaxRetries so the doubled delay cannot overflow
	MaxRetriesLimit = 10

	maxResponseSize = 1 << 20
)

// Config holds registry endpoints and the tax-ID retry policy
type Config struct {
	TaxIDBaseURL  string
	PostalBaseURL string
	Timeout       time.Duration
	// MaxRetries is the number of retries after a 429 response
	MaxRetries    int
	// InitialDelay is the wait before the first retry; it doubles per retry
	InitialDelay  time.Duration
	UserAgent     string
}

// Errors for lookup configuration
var (
	ErrConfigMissingTaxIDURL  = errors.New("lookup: tax ID registry URL is required")
	ErrConfigMissingPostalURL = errors.New("lookup: postal registry URL is required")
	ErrConfigInvalidRetries   = errors.New("lookup: max retries must be between 0 and 10")
	ErrConfigInvalidDelay     = errors.New("lookup: initial delay must be positive")
)

// DefaultConfig returns the public registry endpoints with a 3 retry,
// 1 second initial delay policy
func DefaultConfig() Config {
	return Config{
		TaxIDBaseURL:  DefaultTaxIDBaseURL,
		PostalBaseURL: DefaultPostalBaseURL,
		Timeout:       DefaultTimeout,
		MaxRetries:    DefaultMaxRetries,
		InitialDelay:  DefaultInitialDelay,
		UserAgent:     DefaultUserAgent,
	}
}

// Validate validates the lookup configuration
func (c Config) Validate() error {
	if c.TaxIDBaseURL == "" {
		return ErrConfigMissingTaxIDURL
	}
	if c.PostalBaseURL == "" {
		return ErrConfigMissingPostalURL
	}
	if c.MaxRetries < 0 || c.MaxRetries > MaxRetriesLimit {
		return ErrConfigInvalidRetries
	}
	if c.InitialDelay <= 0 {
		return ErrConfigInvalidDelay
	}
	return nil
}
