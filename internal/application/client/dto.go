package client

import (
	"time"

	"github.com/clientregistry/backend/internal/domain/client"
)

// CreateClientRequest is the body of POST /clients
type CreateClientRequest struct {
	TaxID      string `json:"cnpj"`
	LegalName  string `json:"nome"`
	TradeName  string `json:"nomeFantasia"`
	PostalCode string `json:"cep"`
	Street     string `json:"logradouro"`
	District   string `json:"bairro"`
	City       string `json:"cidade"`
	Region     string `json:"uf"`
	Complement string `json:"complemento"`
	Email      string `json:"email"`
	Phone      string `json:"telefone"`
}

// Details converts the request into client details
func (r CreateClientRequest) Details() client.Details {
	return client.Details{
		TaxID:      r.TaxID,
		LegalName:  r.LegalName,
		TradeName:  r.TradeName,
		PostalCode: r.PostalCode,
		Street:     r.Street,
		District:   r.District,
		City:       r.City,
		Region:     r.Region,
		Complement: r.Complement,
		Email:      r.Email,
		Phone:      r.Phone,
	}
}

// UpdateClientRequest is the body of PUT /clients/:id. Omitted fields keep
// their stored value.
type UpdateClientRequest struct {
	TaxID      *string `json:"cnpj"`
	LegalName  *string `json:"nome"`
	TradeName  *string `json:"nomeFantasia"`
	PostalCode *string `json:"cep"`
	Street     *string `json:"logradouro"`
	District   *string `json:"bairro"`
	City       *string `json:"cidade"`
	Region     *string `json:"uf"`
	Complement *string `json:"complemento"`
	Email      *string `json:"email"`
	Phone      *string `json:"telefone"`
}

// FullUpdate builds an update that supplies every field of d
func FullUpdate(d client.Details) UpdateClientRequest {
	return UpdateClientRequest{
		TaxID:      &d.TaxID,
		LegalName:  &d.LegalName,
		TradeName:  &d.TradeName,
		PostalCode: &d.PostalCode,
		Street:     &d.Street,
		District:   &d.District,
		City:       &d.City,
		Region:     &d.Region,
		Complement: &d.Complement,
		Email:      &d.Email,
		Phone:      &d.Phone,
	}
}

// applyTo returns d with the supplied fields overwritten
func (r UpdateClientRequest) applyTo(d client.Details) client.Details {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&d.TaxID, r.TaxID)
	set(&d.LegalName, r.LegalName)
	set(&d.TradeName, r.TradeName)
	set(&d.PostalCode, r.PostalCode)
	set(&d.Street, r.Street)
	set(&d.District, r.District)
	set(&d.City, r.City)
	set(&d.Region, r.Region)
	set(&d.Complement, r.Complement)
	set(&d.Email, r.Email)
	set(&d.Phone, r.Phone)
	return d
}

// ClientResponse is a stored client as returned by the API
type ClientResponse struct {
	ID         int64     `json:"id"`
	TaxID      string    `json:"cnpj"`
	LegalName  string    `json:"nome"`
	TradeName  string    `json:"nomeFantasia"`
	PostalCode string    `json:"cep"`
	Street     string    `json:"logradouro"`
	District   string    `json:"bairro"`
	City       string    `json:"cidade"`
	Region     string    `json:"uf"`
	Complement string    `json:"complemento"`
	Email      string    `json:"email"`
	Phone      string    `json:"telefone"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToClientResponse converts a domain client to its response form
func ToClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		TaxID:      c.TaxID,
		LegalName:  c.LegalName,
		TradeName:  c.TradeName,
		PostalCode: c.PostalCode,
		Street:     c.Street,
		District:   c.District,
		City:       c.City,
		Region:     c.Region,
		Complement: c.Complement,
		Email:      c.Email,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ListClientsQuery holds the query string of GET /clients
type ListClientsQuery struct {
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
	Nome  string `form:"nome"`
	Cnpj  string `form:"cnpj"`
	Sort  string `form:"sort"`
	Order string `form:"order"`
}

// ListClientsResponse is one page of clients and the total match count
type ListClientsResponse struct {
	Total   int64            `json:"total"`
	Clients []ClientResponse `json:"clients"`
}

// NewCreateRequest builds a create request from client details
func NewCreateRequest(d client.Details) CreateClientRequest {
	return CreateClientRequest{
		TaxID:      d.TaxID,
		LegalName:  d.LegalName,
		TradeName:  d.TradeName,
		PostalCode: d.PostalCode,
		Street:     d.Street,
		District:   d.District,
		City:       d.City,
		Region:     d.Region,
		Complement: d.Complement,
		Email:      d.Email,
		Phone:      d.Phone,
	}
}
