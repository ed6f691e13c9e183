// Package client holds the client registry use cases.
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/clientregistry/backend/internal/domain/client"
	"github.com/clientregistry/backend/internal/domain/shared"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Messages returned to API callers
const (
	MsgTaxIDTaken        = "CNPJ já cadastrado"
	MsgTaxIDTakenByOther = "CNPJ já cadastrado para outro cliente"
	MsgClientNotFound    = "Cliente não encontrado"
)

// Service handles client CRUD
type Service struct {
	repo client.Repository
}

// NewService creates a new Service
func NewService(repo client.Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new client. The tax ID check and the insert
// are separate statements; the unique index catches a concurrent insert.
func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	c, err := client.NewClient(req.Details())
	if err != nil {
		return nil, err
	}

	if err := s.ensureTaxIDFree(ctx, c.TaxID, 0, MsgTaxIDTaken); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, shared.ErrDuplicateKey) {
			return nil, shared.NewDomainError(shared.CodeDuplicateKey, MsgTaxIDTaken)
		}
		return nil, fmt.Errorf("create client: %w", err)
	}

	resp := ToClientResponse(c)
	return &resp, nil
}

// GetByID returns one client
func (s *Service) GetByID(ctx context.Context, id int64) (*ClientResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(c)
	return &resp, nil
}

// Update applies the supplied fields to a stored client
func (s *Service) Update(ctx context.Context, id int64, req UpdateClientRequest) (*ClientResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TaxID != nil && c.ChangesTaxID(*req.TaxID) {
		if err := s.ensureTaxIDFree(ctx, *req.TaxID, id, MsgTaxIDTakenByOther); err != nil {
			return nil, err
		}
	}

	if err := c.Update(req.applyTo(c.Details)); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, shared.ErrDuplicateKey):
			return nil, shared.NewDomainError(shared.CodeDuplicateKey, MsgTaxIDTakenByOther)
		case errors.Is(err, shared.ErrNotFound):
			return nil, shared.NewDomainError(shared.CodeNotFound, MsgClientNotFound)
		}
		return nil, fmt.Errorf("update client %d: %w", id, err)
	}

	resp := ToClientResponse(c)
	return &resp, nil
}

// Delete removes a client
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.CodeNotFound, MsgClientNotFound)
		}
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return nil
}

// List returns one page of clients. nome and cnpj are exact-match filters
// combined with AND.
func (s *Service) List(ctx context.Context, q ListClientsQuery) (*ListClientsResponse, error) {
	filter := shared.DefaultFilter()
	filter.Page = defaultPage
	filter.PageSize = defaultLimit
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.Limit > 0 {
		filter.PageSize = q.Limit
	}
	if q.Nome != "" {
		filter.Filters["nome"] = q.Nome
	}
	if q.Cnpj != "" {
		filter.Filters["cnpj"] = q.Cnpj
	}
	if q.Sort != "" {
		filter.OrderBy = q.Sort
	}
	if q.Order != "" {
		filter.OrderDir = q.Order
	}

	clients, total, err := s.repo.FindPage(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	resp := &ListClientsResponse{
		Total:   total,
		Clients: make([]ClientResponse, len(clients)),
	}
	for i := range clients {
		resp.Clients[i] = ToClientResponse(&clients[i])
	}
	return resp, nil
}

func (s *Service) find(ctx context.Context, id int64) (*client.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, MsgClientNotFound)
		}
		return nil, fmt.Errorf("find client %d: %w", id, err)
	}
	return c, nil
}

// ensureTaxIDFree fails with DUPLICATE_KEY when taxID belongs to a client
// other than ownerID
func (s *Service) ensureTaxIDFree(ctx context.Context, taxID string, ownerID int64, msg string) error {
	existing, err := s.repo.FindByTaxID(ctx, taxID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check tax id: %w", err)
	case existing.ID != ownerID:
		return shared.NewDomainError(shared.CodeDuplicateKey, msg)
	}
	return nil
}
