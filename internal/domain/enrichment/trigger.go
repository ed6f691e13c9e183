package enrichment

import (
	"unicode/utf8"

	"github.com/clientregistry/backend/internal/domain/client"
)

// Lengths at which an edited field starts a lookup
const (
	TaxIDLength      = 14
	PostalCodeLength = 8
)

// TriggeredBy reports which lookup, if any, an edit of field to value starts.
// Only the exact length qualifies; any other value is ignored without error.
func TriggeredBy(field client.Field, value string) (Source, bool) {
	n := utf8.RuneCountInString(value)
	switch {
	case field == client.FieldTaxID && n == TaxIDLength:
		return SourceTaxID, true
	case field == client.FieldPostalCode && n == PostalCodeLength:
		return SourcePostal, true
	}
	return "", false
}
