package models

import "github.com/clientregistry/backend/internal/domain/client"

// ClientModel is the persistence model for the clients table.
// Optional attributes are stored as empty strings.
type ClientModel struct {
	BaseModel
	TaxID      string `gorm:"column:cnpj;type:varchar(14);not null;uniqueIndex:idx_clients_cnpj"`
	LegalName  string `gorm:"column:nome;type:varchar(255);not null;index:idx_clients_nome"`
	TradeName  string `gorm:"column:nome_fantasia;type:varchar(255);not null"`
	PostalCode string `gorm:"column:cep;type:varchar(8);not null"`
	Street     string `gorm:"column:logradouro;type:varchar(255);not null"`
	District   string `gorm:"column:bairro;type:varchar(255);not null"`
	City       string `gorm:"column:cidade;type:varchar(255);not null"`
	Region     string `gorm:"column:uf;type:varchar(2);not null"`
	Complement string `gorm:"column:complemento;type:varchar(255);not null"`
	Email      string `gorm:"column:email;type:varchar(255);not null"`
	Phone      string `gorm:"column:telefone;type:varchar(15);not null"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the model to a domain client
func (m *ClientModel) ToDomain() *client.Client {
	return &client.Client{
		BaseEntity: m.BaseModel.ToDomain(),
		Details: client.Details{
			TaxID:      m.TaxID,
			LegalName:  m.LegalName,
			TradeName:  m.TradeName,
			PostalCode: m.PostalCode,
			Street:     m.Street,
			District:   m.District,
			City:       m.City,
			Region:     m.Region,
			Complement: m.Complement,
			Email:      m.Email,
			Phone:      m.Phone,
		},
	}
}

// ClientModelFromDomain converts a domain client to its persistence model
func ClientModelFromDomain(c *client.Client) *ClientModel {
	m := &ClientModel{
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
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
