package enrichment

import (
	"bytes"
	"encoding/json"
)

// PlaceKind tags which shape a Place arrived in
type PlaceKind int

const (
	PlaceAbsent PlaceKind = iota
	PlacePlain
	PlaceNamed
)

// NamedPlace is the object shape of a place, e.g. {"nome": "São Paulo"} or
// {"sigla": "SP", "nome": "São Paulo"}
type NamedPlace struct {
	Name string `json:"nome"`
	Code string `json:"sigla"`
}

// Place is a registry value that is either a bare string or an object
// carrying a name and/or short code.
type Place struct {
	Kind  PlaceKind
	Plain string
	Named NamedPlace
}

// PlainPlace builds the string variant
func PlainPlace(s string) Place {
	return Place{Kind: PlacePlain, Plain: s}
}

// NamedPlaceOf builds the object variant
func NamedPlaceOf(n NamedPlace) Place {
	return Place{Kind: PlaceNamed, Named: n}
}

// Name extracts a display name: the bare string, or the object's nome.
func (p Place) Name() string {
	switch p.Kind {
	case PlacePlain:
		return p.Plain
	case PlaceNamed:
		return p.Named.Name
	}
	return ""
}

// Code extracts a short code: the bare string, or the object's sigla.
func (p Place) Code() string {
	switch p.Kind {
	case PlacePlain:
		return p.Plain
	case PlaceNamed:
		return p.Named.Code
	}
	return ""
}

// UnmarshalJSON selects the variant from the first JSON token. Values that
// are neither strings nor objects decode as PlaceAbsent.
func (p *Place) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*p = Place{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PlainPlace(s)
	case '{':
		var n NamedPlace
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*p = NamedPlaceOf(n)
	default:
		*p = Place{}
	}
	return nil
}

// Text is a scalar the registries send as either a string or a number.
type Text string

// UnmarshalJSON accepts strings, numbers and null
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// booleans, objects and arrays carry no usable text
		*t = ""
		return nil
	}
	*t = Text(n.String())
	return nil
}

// Flag is a boolean the registries send either as true/false or as "true"/"false".
type Flag bool

// UnmarshalJSON accepts booleans, their string forms and null
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(bytes.TrimSpace(data), `"`)) {
	case "true":
		*f = true
	default:
		*f = false
	}
	return nil
}
