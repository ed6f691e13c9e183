package lookup

import (
	"fmt"

	"github.com/clientregistry/backend/internal/domain/shared"
)

// Service names, also used as metric labels
const (
	ServiceTaxID  = "cnpj"
	ServicePostal = "cep"
)

// Error describes a failed registry lookup. It matches shared.ErrLookupFailed
// or shared.ErrNotFound under errors.Is.
type Error struct {
	Service    string
	StatusCode int
	Kind       *shared.DomainError
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s lookup: %s", e.Service, e.Kind.Message)
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the domain kind and the transport cause
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func lookupFailed(service string, status int, cause error) *Error {
	msg := "Erro ao buscar dados do CNPJ."
	if service == ServicePostal {
		msg = "Erro ao buscar dados do CEP. Verifique o valor inserido."
	}
	return &Error{
		Service:    service,
		StatusCode: status,
		Kind:       shared.NewDomainError(shared.CodeLookupFailed, msg),
		Cause:      cause,
	}
}

func notFound(service string) *Error {
	return &Error{
		Service: service,
		Kind:    shared.NewDomainError(shared.CodeNotFound, "CEP não encontrado."),
	}
}
