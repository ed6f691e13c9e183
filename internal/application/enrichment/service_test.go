package enrichment

import (
	"context"
	"testing"

	"github.com/clientregistry/backend/internal/domain/enrichment"
	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTaxIDLookup struct {
	mock.Mock
}

func (m *MockTaxIDLookup) FetchTaxIDProfile(ctx context.Context, taxID string) (*enrichment.TaxIDProfile, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrichment.TaxIDProfile), args.Error(1)
}

type MockPostalLookup struct {
	mock.Mock
}

func (m *MockPostalLookup) FetchPostalProfile(ctx context.Context, postalCode string) (*enrichment.PostalProfile, error) {
	args := m.Called(ctx, postalCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrichment.PostalProfile), args.Error(1)
}

func TestService_EnrichTaxID(t *testing.T) {
	ctx := context.Background()

	t.Run("merges the profile", func(t *testing.T) {
		taxID := new(MockTaxIDLookup)
		svc := NewService(taxID, new(MockPostalLookup))

		taxID.On("FetchTaxIDProfile", ctx, "11222333000181").Return(&enrichment.TaxIDProfile{
			LegalName: "ACME LTDA",
			Establishment: enrichment.Establishment{
				City:  enrichment.Place{Kind: enrichment.PlacePlain, Plain: "São Paulo"},
				Email: "contato@acme.com.br",
			},
		}, nil)

		patch, err := svc.EnrichTaxID(ctx, "11222333000181")
		require.NoError(t, err)
		assert.Equal(t, enrichment.SourceTaxID, patch.Source)
		require.NotNil(t, patch.LegalName)
		assert.Equal(t, "ACME LTDA", *patch.LegalName)
		require.NotNil(t, patch.City)
		assert.Equal(t, "São Paulo", *patch.City)
		require.NotNil(t, patch.Phone)
		assert.Equal(t, "", *patch.Phone)
	})

	t.Run("rejects a short tax id without calling the registry", func(t *testing.T) {
		taxID := new(MockTaxIDLookup)
		svc := NewService(taxID, new(MockPostalLookup))

		_, err := svc.EnrichTaxID(ctx, "123")
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
		taxID.AssertNotCalled(t, "FetchTaxIDProfile", mock.Anything, mock.Anything)
	})

	t.Run("rejects letters", func(t *testing.T) {
		svc := NewService(new(MockTaxIDLookup), new(MockPostalLookup))

		_, err := svc.EnrichTaxID(ctx, "1122233300018x")
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})

	t.Run("passes lookup failures through", func(t *testing.T) {
		taxID := new(MockTaxIDLookup)
		svc := NewService(taxID, new(MockPostalLookup))

		taxID.On("FetchTaxIDProfile", ctx, "11222333000181").Return(nil, shared.ErrLookupFailed)

		_, err := svc.EnrichTaxID(ctx, "11222333000181")
		assert.ErrorIs(t, err, shared.ErrLookupFailed)
	})
}

func TestService_EnrichPostalCode(t *testing.T) {
	ctx := context.Background()

	t.Run("copies the address", func(t *testing.T) {
		postal := new(MockPostalLookup)
		svc := NewService(new(MockTaxIDLookup), postal)

		postal.On("FetchPostalProfile", ctx, "01310100").Return(&enrichment.PostalProfile{
			Street:   "Avenida Paulista",
			District: "Bela Vista",
			City:     "São Paulo",
			Region:   "SP",
		}, nil)

		patch, err := svc.Enrich(ctx, enrichment.SourcePostal, "01310100")
		require.NoError(t, err)
		assert.Equal(t, enrichment.SourcePostal, patch.Source)
		assert.Equal(t, "Avenida Paulista", *patch.Street)
		assert.Equal(t, "SP", *patch.Region)
		assert.Nil(t, patch.PostalCode)
		assert.Nil(t, patch.LegalName)
	})

	t.Run("not found", func(t *testing.T) {
		postal := new(MockPostalLookup)
		svc := NewService(new(MockTaxIDLookup), postal)

		postal.On("FetchPostalProfile", ctx, "99999999").Return(nil, shared.ErrNotFound)

		_, err := svc.EnrichPostalCode(ctx, "99999999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("bad length", func(t *testing.T) {
		svc := NewService(new(MockTaxIDLookup), new(MockPostalLookup))

		_, err := svc.EnrichPostalCode(ctx, "123")
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}
