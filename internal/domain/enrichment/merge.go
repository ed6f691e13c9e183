package enrichment

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MergeTaxIDProfile maps a tax-ID registry profile onto the client fields it
// covers. Every mapped field is supplied; absent values become "".
func MergeTaxIDProfile(p *TaxIDProfile) Patch {
	if p == nil {
		p = &TaxIDProfile{}
	}
	e := p.Establishment

	tradeName := p.TradeName
	if tradeName == "" {
		tradeName = e.TradeName
	}

	// a plain uf wins; otherwise fall back to the state object's code
	region := e.State.Code()
	if e.Region.Kind == PlacePlain {
		region = e.Region.Plain
	}

	phone := ""
	if e.AreaCode != "" && e.Phone != "" {
		phone = digitsOnly(string(e.AreaCode) + string(e.Phone))
	}

	return Patch{
		Source:     SourceTaxID,
		LegalName:  text(p.LegalName),
		TradeName:  text(tradeName),
		PostalCode: text(string(e.PostalCode)),
		Street:     text(e.Street),
		District:   text(e.District),
		City:       text(e.City.Name()),
		Region:     text(region),
		Complement: text(e.Complement),
		Email:      text(e.Email),
		Phone:      &phone,
	}
}

// MergePostalProfile copies a postal registry address 1:1 onto the address
// fields. The postal code itself is left to the user.
func MergePostalProfile(p *PostalProfile) Patch {
	if p == nil {
		p = &PostalProfile{}
	}
	return Patch{
		Source:     SourcePostal,
		Street:     text(p.Street),
		District:   text(p.District),
		City:       text(p.City),
		Region:     text(p.Region),
		Complement: text(p.Complement),
	}
}

// text cleans a registry string and returns a pointer to it
func text(s string) *string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return &s
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
