// Package enrichment fetches registry profiles and turns them into client patches.
package enrichment

import (
	"context"
	"regexp"

	"github.com/clientregistry/backend/internal/domain/client"
	"github.com/clientregistry/backend/internal/domain/enrichment"
	"github.com/clientregistry/backend/internal/domain/shared"
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// Service runs one lookup and merges the result
type Service struct {
	taxID  enrichment.TaxIDLookup
	postal enrichment.PostalLookup
}

// NewService creates a new Service
func NewService(taxID enrichment.TaxIDLookup, postal enrichment.PostalLookup) *Service {
	return &Service{taxID: taxID, postal: postal}
}

// EnrichTaxID looks up a CNPJ and returns the patch it produces
func (s *Service) EnrichTaxID(ctx context.Context, taxID string) (enrichment.Patch, error) {
	if err := checkIdentifier(client.FieldTaxID, taxID, enrichment.TaxIDLength, client.MsgTaxIDLength, client.MsgTaxIDDigits); err != nil {
		return enrichment.Patch{}, err
	}
	profile, err := s.taxID.FetchTaxIDProfile(ctx, taxID)
	if err != nil {
		return enrichment.Patch{}, err
	}
	return enrichment.MergeTaxIDProfile(profile), nil
}

// EnrichPostalCode looks up a CEP and returns the address patch it produces
func (s *Service) EnrichPostalCode(ctx context.Context, postalCode string) (enrichment.Patch, error) {
	if err := checkIdentifier(client.FieldPostalCode, postalCode, enrichment.PostalCodeLength, client.MsgPostalCode, client.MsgPostalCode); err != nil {
		return enrichment.Patch{}, err
	}
	profile, err := s.postal.FetchPostalProfile(ctx, postalCode)
	if err != nil {
		return enrichment.Patch{}, err
	}
	return enrichment.MergePostalProfile(profile), nil
}

// Enrich dispatches on the lookup source
func (s *Service) Enrich(ctx context.Context, source enrichment.Source, value string) (enrichment.Patch, error) {
	if source == enrichment.SourcePostal {
		return s.EnrichPostalCode(ctx, value)
	}
	return s.EnrichTaxID(ctx, value)
}

func checkIdentifier(field client.Field, value string, length int, lengthMsg, digitsMsg string) error {
	switch {
	case len(value) != length:
		return shared.NewValidationError(map[string]string{string(field): lengthMsg})
	case !digitsOnly.MatchString(value):
		return shared.NewValidationError(map[string]string{string(field): digitsMsg})
	}
	return nil
}
