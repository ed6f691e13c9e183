package enrichment

import "github.com/clientregistry/backend/internal/domain/client"

// Source identifies which registry produced a patch
type Source string

const (
	SourceTaxID  Source = "cnpj"
	SourcePostal Source = "cep"
)

// Patch is a partial client update. Nil fields are not supplied and leave
// the target untouched; a supplied empty string clears the target field.
type Patch struct {
	Source     Source  `json:"source"`
	LegalName  *string `json:"nome,omitempty"`
	TradeName  *string `json:"nomeFantasia,omitempty"`
	PostalCode *string `json:"cep,omitempty"`
	Street     *string `json:"logradouro,omitempty"`
	District   *string `json:"bairro,omitempty"`
	City       *string `json:"cidade,omitempty"`
	Region     *string `json:"uf,omitempty"`
	Complement *string `json:"complemento,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"telefone,omitempty"`
}

func (p *Patch) entries() []struct {
	field client.Field
	value *string
} {
	return []struct {
		field client.Field
		value *string
	}{
		{client.FieldLegalName, p.LegalName},
		{client.FieldTradeName, p.TradeName},
		{client.FieldPostalCode, p.PostalCode},
		{client.FieldStreet, p.Street},
		{client.FieldDistrict, p.District},
		{client.FieldCity, p.City},
		{client.FieldRegion, p.Region},
		{client.FieldComplement, p.Complement},
		{client.FieldEmail, p.Email},
		{client.FieldPhone, p.Phone},
	}
}

// Fields returns the fields this patch supplies
func (p Patch) Fields() []client.Field {
	var out []client.Field
	for _, e := range p.entries() {
		if e.value != nil {
			out = append(out, e.field)
		}
	}
	return out
}

// ApplyTo shallow-merges the patch onto d
func (p Patch) ApplyTo(d *client.Details) {
	for _, e := range p.entries() {
		if e.value != nil {
			// every patch field is a known client field
			_ = d.Set(e.field, *e.value)
		}
	}
}
