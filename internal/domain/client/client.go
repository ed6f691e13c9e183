package client

import (
	"fmt"

	"github.com/clientregistry/backend/internal/domain/shared"
)

// Field names a user-editable attribute of a client. Values match the JSON
// keys used by the REST API.
type Field string

const (
	FieldTaxID      Field = "cnpj"
	FieldLegalName  Field = "nome"
	FieldTradeName  Field = "nomeFantasia"
	FieldPostalCode Field = "cep"
	FieldStreet     Field = "logradouro"
	FieldDistrict   Field = "bairro"
	FieldCity       Field = "cidade"
	FieldRegion     Field = "uf"
	FieldComplement Field = "complemento"
	FieldEmail      Field = "email"
	FieldPhone      Field = "telefone"
)

// Fields lists every editable field in display order
var Fields = []Field{
	FieldTaxID, FieldLegalName, FieldTradeName, FieldPostalCode, FieldStreet,
	FieldDistrict, FieldCity, FieldRegion, FieldComplement, FieldEmail, FieldPhone,
}

// ParseField converts a JSON key into a Field
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("unknown field %q", name))
}

// Details holds the editable attributes of a client.
// Empty optional strings mean "absent".
type Details struct {
	TaxID      string `json:"cnpj" validate:"len=14,digits"`
	LegalName  string `json:"nome" validate:"required"`
	TradeName  string `json:"nomeFantasia"`
	PostalCode string `json:"cep" validate:"len=8,digits"`
	Street     string `json:"logradouro"`
	District   string `json:"bairro"`
	City       string `json:"cidade"`
	Region     string `json:"uf" validate:"omitempty,len=2"`
	Complement string `json:"complemento"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"telefone" validate:"omitempty,min=10,max=15,digits"`
}

// Get returns the value of a field
func (d *Details) Get(f Field) string {
	if p := d.ref(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns a field value
func (d *Details) Set(f Field, value string) error {
	p := d.ref(f)
	if p == nil {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("unknown field %q", f))
	}
	*p = value
	return nil
}

func (d *Details) ref(f Field) *string {
	switch f {
	case FieldTaxID:
		return &d.TaxID
	case FieldLegalName:
		return &d.LegalName
	case FieldTradeName:
		return &d.TradeName
	case FieldPostalCode:
		return &d.PostalCode
	case FieldStreet:
		return &d.Street
	case FieldDistrict:
		return &d.District
	case FieldCity:
		return &d.City
	case FieldRegion:
		return &d.Region
	case FieldComplement:
		return &d.Complement
	case FieldEmail:
		return &d.Email
	case FieldPhone:
		return &d.Phone
	}
	return nil
}

// Client is a registered company. It is the only aggregate of the registry.
type Client struct {
	shared.BaseEntity
	Details
}

// NewClient creates a client after checking every field rule
func NewClient(d Details) (*Client, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Details:    d,
	}, nil
}

// Update replaces the client's details. The client is left untouched when
// the new details break a rule.
func (c *Client) Update(d Details) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.Details = d
	c.Touch()
	return nil
}

// ChangesTaxID reports whether taxID differs from the stored one
func (c *Client) ChangesTaxID(taxID string) bool {
	return taxID != "" && taxID != c.TaxID
}

var _ shared.Entity = (*Client)(nil)
