package client

import (
	"context"

	"github.com/clientregistry/backend/internal/domain/shared"
)

// Repository defines the interface for client persistence
type Repository interface {
	// Create inserts a new client and assigns its ID
	// Returns shared.ErrDuplicateKey when the tax ID is already stored
	Create(ctx context.Context, c *Client) error

	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id int64) (*Client, error)

	// FindByTaxID finds a client by its tax ID (CNPJ)
	FindByTaxID(ctx context.Context, taxID string) (*Client, error)

	// Update persists changes to an existing client
	Update(ctx context.Context, c *Client) error

	// Delete removes a client; returns shared.ErrNotFound when no row matched
	Delete(ctx context.Context, id int64) error

	// FindPage returns one page of clients matching the filter and the total match count
	FindPage(ctx context.Context, filter shared.Filter) ([]Client, int64, error)
}
