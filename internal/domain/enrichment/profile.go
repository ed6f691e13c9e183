// Package enrichment turns tax-ID and postal-code registry responses into
// partial client updates.
package enrichment

import "context"

// TaxIDProfile is the raw company profile returned by the tax-ID registry.
// Only the attributes the merger reads are decoded.
type TaxIDProfile struct {
	LegalName     string        `json:"razao_social"`
	TradeName     string        `json:"nome_fantasia"`
	Establishment Establishment `json:"estabelecimento"`
}

// Establishment is the registered head office of a company
type Establishment struct {
	TradeName  string `json:"nome_fantasia"`
	PostalCode Text   `json:"cep"`
	Street     string `json:"logradouro"`
	District   string `json:"bairro"`
	Complement string `json:"complemento"`
	Email      string `json:"email"`
	City       Place  `json:"cidade"`
	Region     Place  `json:"uf"`
	State      Place  `json:"estado"`
	AreaCode   Text   `json:"ddd1"`
	Phone      Text   `json:"telefone1"`
}

// PostalProfile is the raw address returned by the postal-code registry
type PostalProfile struct {
	PostalCode string `json:"cep"`
	Street     string `json:"logradouro"`
	District   string `json:"bairro"`
	City       string `json:"localidade"`
	Region     string `json:"uf"`
	Complement string `json:"complemento"`

	// NotFound is set by the registry for unknown postal codes
	NotFound Flag `json:"erro"`
}

// TaxIDLookup fetches company profiles by tax ID (CNPJ)
type TaxIDLookup interface {
	FetchTaxIDProfile(ctx context.Context, taxID string) (*TaxIDProfile, error)
}

// PostalLookup fetches addresses by postal code (CEP)
type PostalLookup interface {
	FetchPostalProfile(ctx context.Context, postalCode string) (*PostalProfile, error)
}
