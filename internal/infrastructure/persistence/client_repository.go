package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/clientregistry/backend/internal/domain/client"
	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/clientregistry/backend/internal/infrastructure/persistence/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique index conflict
const uniqueViolation = "23505"

// ClientFilterColumns lists the columns accepted as exact-match list filters
var ClientFilterColumns = map[string]bool{
	"nome": true,
	"cnpj": true,
}

// GormClientRepository implements client.Repository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Create inserts a client and copies the assigned ID back onto it
func (r *GormClientRepository) Create(ctx context.Context, c *client.Client) error {
	model := models.ClientModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	c.ID = model.ID
	return nil
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id int64) (*client.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByTaxID finds a client by its tax ID
func (r *GormClientRepository) FindByTaxID(ctx context.Context, taxID string) (*client.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).Where("cnpj = ?", taxID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Update writes every column of an existing client
func (r *GormClientRepository) Update(ctx context.Context, c *client.Client) error {
	model := models.ClientModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(model).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a client
func (r *GormClientRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindPage returns one page of clients and the number of rows matching the filter
func (r *GormClientRepository) FindPage(ctx context.Context, filter shared.Filter) ([]client.Client, int64, error) {
	countQuery, err := r.filtered(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageQuery, err := r.filtered(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	orderBy := ValidateSortField(filter.OrderBy, ClientSortFields, "id")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var rows []models.ClientModel
	if err := pageQuery.
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	clients := make([]client.Client, len(rows))
	for i := range rows {
		clients[i] = *rows[i].ToDomain()
	}
	return clients, total, nil
}

// filtered starts a query with the exact-match filters applied (AND)
func (r *GormClientRepository) filtered(ctx context.Context, filter shared.Filter) (*gorm.DB, error) {
	columns := make([]string, 0, len(filter.Filters))
	for column := range filter.Filters {
		if !ClientFilterColumns[column] {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("unsupported filter %q", column))
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	query := r.db.WithContext(ctx).Model(&models.ClientModel{})
	for _, column := range columns {
		query = query.Where(column+" = ?", filter.Filters[column])
	}
	return query, nil
}

// translateError maps driver errors onto the domain taxonomy. Both the
// translated gorm error and a raw PostgreSQL unique violation count as a
// duplicate key.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrDuplicateKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return shared.ErrDuplicateKey
	}
	return err
}

var _ client.Repository = (*GormClientRepository)(nil)
