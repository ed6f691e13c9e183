package client

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

// Field-level messages shown to the user
const (
	MsgTaxIDLength   = "CNPJ deve ter 14 caracteres"
	MsgTaxIDDigits   = "CNPJ deve conter apenas números"
	MsgLegalName     = "Nome é obrigatório"
	MsgPostalCode    = "CEP deve conter exatamente 8 números"
	MsgRegion        = "UF deve conter exatamente 2 caracteres"
	MsgEmail         = "E-mail inválido"
	MsgPhone         = "Telefone inválido"
	msgInvalidFormat = "Formato inválido"
)

var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

var rules = newRuleSet()

func newRuleSet() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// registration only fails on an empty tag
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	})
	return v
}

// Check runs every field rule and returns the failing fields keyed by
// JSON name. It returns nil when the details are valid.
func (d Details) Check() map[string]string {
	err := rules.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(Field(fe.Field()), fe.Tag())
	}
	return fields
}

// Validate returns a VALIDATION_FAILED domain error listing every failing field
func (d Details) Validate() error {
	if fields := d.Check(); len(fields) > 0 {
		return shared.NewValidationError(fields)
	}
	return nil
}

func messageFor(f Field, tag string) string {
	switch f {
	case FieldTaxID:
		if tag == "digits" {
			return MsgTaxIDDigits
		}
		return MsgTaxIDLength
	case FieldLegalName:
		return MsgLegalName
	case FieldPostalCode:
		return MsgPostalCode
	case FieldRegion:
		return MsgRegion
	case FieldEmail:
		return MsgEmail
	case FieldPhone:
		return MsgPhone
	}
	return msgInvalidFormat
}
