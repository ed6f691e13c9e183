package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientregistry/backend/internal/domain/client"
	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/clientregistry/backend/internal/infrastructure/persistence"
)

func newClient(t *testing.T, taxID, name string) *client.Client {
	t.Helper()
	c, err := client.NewClient(client.Details{
		TaxID:      taxID,
		LegalName:  name,
		PostalCode: "01310100",
		City:       "São Paulo",
		Region:     "SP",
	})
	require.NoError(t, err)
	return c
}

func TestClientRepository_CRUD(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormClientRepository(tdb.DB)
	ctx := context.Background()

	c := newClient(t, "11222333000181", "ACME LTDA")
	require.NoError(t, repo.Create(ctx, c))
	require.NotZero(t, c.ID)

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME LTDA", found.LegalName)
	assert.Equal(t, "São Paulo", found.City)

	byTaxID, err := repo.FindByTaxID(ctx, "11222333000181")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byTaxID.ID)

	found.LegalName = "ACME COMERCIO LTDA"
	found.Email = "contato@acme.com.br"
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME COMERCIO LTDA", reloaded.LegalName)
	assert.Equal(t, "contato@acme.com.br", reloaded.Email)
	assert.Equal(t, found.CreatedAt.Unix(), reloaded.CreatedAt.Unix())

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), shared.ErrNotFound)
}

func TestClientRepository_UniqueTaxID(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormClientRepository(tdb.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newClient(t, "11222333000181", "ACME LTDA")))
	err := repo.Create(ctx, newClient(t, "11222333000181", "OUTRA LTDA"))
	assert.ErrorIs(t, err, shared.ErrDuplicateKey)

	other := newClient(t, "99888777000166", "OUTRA LTDA")
	require.NoError(t, repo.Create(ctx, other))
	other.TaxID = "11222333000181"
	assert.ErrorIs(t, repo.Update(ctx, other), shared.ErrDuplicateKey)
}

func TestClientRepository_CheckConstraints(t *testing.T) {
	tdb := NewTestDB(t)

	err := tdb.DB.Exec(`INSERT INTO clients (cnpj, nome, cep) VALUES ('1122233300018X', 'X', '01310100')`).Error
	assert.Error(t, err)

	err = tdb.DB.Exec(`INSERT INTO clients (cnpj, nome, cep) VALUES ('11222333000181', 'X', '0131010')`).Error
	assert.Error(t, err)
}

func TestClientRepository_FindPage(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormClientRepository(tdb.DB)
	ctx := context.Background()

	taxIDs := []string{"11111111000111", "22222222000122", "33333333000133", "44444444000144", "55555555000155"}
	for i, taxID := range taxIDs {
		name := "EMPRESA A"
		if i%2 == 1 {
			name = "EMPRESA B"
		}
		require.NoError(t, repo.Create(ctx, newClient(t, taxID, name)))
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 2
	page, total, err := repo.FindPage(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, taxIDs[0], page[0].TaxID)
	assert.Equal(t, taxIDs[1], page[1].TaxID)

	filter.Page = 3
	page, _, err = repo.FindPage(ctx, filter)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, taxIDs[4], page[0].TaxID)

	filter = shared.DefaultFilter()
	filter.Filters["nome"] = "EMPRESA B"
	page, total, err = repo.FindPage(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, page, 2)

	filter.Filters["cnpj"] = taxIDs[3]
	page, total, err = repo.FindPage(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, page, 1)
	assert.Equal(t, taxIDs[3], page[0].TaxID)

	filter = shared.DefaultFilter()
	filter.Filters["cidade"] = "São Paulo"
	_, _, err = repo.FindPage(ctx, filter)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
