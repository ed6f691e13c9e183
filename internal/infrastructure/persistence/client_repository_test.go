package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clientregistry/backend/internal/domain/client"
	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/clientregistry/backend/internal/infrastructure/persistence/models"
)

// newSQLiteClientRepository creates a repository over a private in-memory database
func newSQLiteClientRepository(t *testing.T) *GormClientRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.ClientModel{}))
	return NewGormClientRepository(db)
}

// newMockClientRepository creates a repository with a mocked PostgreSQL connection
func newMockClientRepository(t *testing.T) (*GormClientRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewGormClientRepository(gormDB), mock, mockDB
}

func newTestClient(t *testing.T, taxID, name string) *client.Client {
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

func TestGormClientRepository_CreateAndFind(t *testing.T) {
	repo := newSQLiteClientRepository(t)
	ctx := context.Background()

	c := newTestClient(t, "11222333000181", "ACME LTDA")
	require.NoError(t, repo.Create(ctx, c))
	assert.True(t, c.IsPersisted())

	t.Run("by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "ACME LTDA", found.LegalName)
		assert.Equal(t, "São Paulo", found.City)
		assert.Equal(t, "", found.Email)
	})

	t.Run("by tax id", func(t *testing.T) {
		found, err := repo.FindByTaxID(ctx, "11222333000181")
		require.NoError(t, err)
		assert.Equal(t, c.ID, found.ID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, c.ID+100)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing tax id", func(t *testing.T) {
		_, err := repo.FindByTaxID(ctx, "99999999000199")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormClientRepository_Create_DuplicateTaxID(t *testing.T) {
	repo := newSQLiteClientRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestClient(t, "11222333000181", "First")))
	err := repo.Create(ctx, newTestClient(t, "11222333000181", "Second"))
	assert.ErrorIs(t, err, shared.ErrDuplicateKey)

	_, total, err := repo.FindPage(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGormClientRepository_Update(t *testing.T) {
	repo := newSQLiteClientRepository(t)
	ctx := context.Background()

	c := newTestClient(t, "11222333000181", "ACME LTDA")
	require.NoError(t, repo.Create(ctx, c))

	t.Run("writes every column including cleared ones", func(t *testing.T) {
		d := c.Details
		d.LegalName = "ACME S.A."
		d.City = ""
		require.NoError(t, c.Update(d))
		require.NoError(t, repo.Update(ctx, c))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "ACME S.A.", found.LegalName)
		assert.Equal(t, "", found.City)
	})

	t.Run("unknown id", func(t *testing.T) {
		ghost := newTestClient(t, "55666777000100", "Ghost")
		ghost.ID = 999
		assert.ErrorIs(t, repo.Update(ctx, ghost), shared.ErrNotFound)
	})

	t.Run("tax id collision", func(t *testing.T) {
		other := newTestClient(t, "55666777000100", "Other")
		require.NoError(t, repo.Create(ctx, other))

		other.TaxID = c.TaxID
		assert.ErrorIs(t, repo.Update(ctx, other), shared.ErrDuplicateKey)
	})
}

func TestGormClientRepository_Delete(t *testing.T) {
	repo := newSQLiteClientRepository(t)
	ctx := context.Background()

	c := newTestClient(t, "11222333000181", "ACME LTDA")
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), shared.ErrNotFound)

	_, err := repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormClientRepository_FindPage(t *testing.T) {
	repo := newSQLiteClientRepository(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		name := "Empresa"
		if i%3 == 0 {
			name = "Filial"
		}
		require.NoError(t, repo.Create(ctx, newTestClient(t, fmt.Sprintf("1122233300%04d", i), name)))
	}

	t.Run("first page with default size", func(t *testing.T) {
		clients, total, err := repo.FindPage(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		require.Len(t, clients, 10)
		assert.Equal(t, "11222333000000", clients[0].TaxID)
	})

	t.Run("second page", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Page = 2
		clients, total, err := repo.FindPage(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		assert.Len(t, clients, 2)
	})

	t.Run("exact name filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["nome"] = "Filial"
		clients, total, err := repo.FindPage(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		for _, c := range clients {
			assert.Equal(t, "Filial", c.LegalName)
		}
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["nome"] = "Filial"
		filter.Filters["cnpj"] = "11222333000001"
		_, total, err := repo.FindPage(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("descending order", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderDir = "desc"
		clients, _, err := repo.FindPage(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, "11222333000011", clients[0].TaxID)
	})

	t.Run("unknown filter column", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["email; DROP TABLE clients"] = "x"
		_, _, err := repo.FindPage(ctx, filter)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestGormClientRepository_SQL(t *testing.T) {
	t.Run("find by id query shape", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "cnpj", "nome", "cep"}).
			AddRow(7, "11222333000181", "ACME LTDA", "01310100")
		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(7), 1).
			WillReturnRows(rows)

		found, err := repo.FindByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), found.ID)
		assert.Equal(t, "ACME LTDA", found.LegalName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to duplicate key", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO "clients"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_clients_cnpj"})

		err := repo.Create(context.Background(), newTestClient(t, "11222333000181", "ACME LTDA"))
		assert.ErrorIs(t, err, shared.ErrDuplicateKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete with no rows is not found", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "clients" WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 42)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSortValidation(t *testing.T) {
	assert.Equal(t, "DESC", ValidateSortOrder(" desc "))
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(""))
	assert.Equal(t, "ASC", ValidateSortOrder("random"))

	assert.Equal(t, "nome", ValidateSortField("nome", ClientSortFields, "id"))
	assert.Equal(t, "id", ValidateSortField("", ClientSortFields, "id"))
	assert.Equal(t, "id", ValidateSortField("password", ClientSortFields, "id"))
}
