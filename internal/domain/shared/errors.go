package shared

import (
	"errors"
	"sort"
	"strings"
)

// Error codes shared by every layer. Handlers translate them to HTTP status codes.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeDuplicateKey     = "DUPLICATE_KEY"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeLookupFailed     = "LOOKUP_FAILED"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidState     = "INVALID_STATE"
	CodeLookupsInFlight  = "LOOKUPS_IN_FLIGHT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// Is matches any DomainError carrying the same code, so a message-specific
// error still satisfies errors.Is against the package sentinels.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a VALIDATION_FAILED error carrying per-field messages.
func NewValidationError(fields map[string]string) *DomainError {
	return &DomainError{
		Code:    CodeValidationFailed,
		Message: "Dados inválidos",
		Fields:  fields,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateKey     = NewDomainError(CodeDuplicateKey, "Resource already exists")
	ErrValidationFailed = NewDomainError(CodeValidationFailed, "Validation failed")
	ErrLookupFailed     = NewDomainError(CodeLookupFailed, "External lookup failed")
	ErrInvalidInput     = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState     = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrLookupsInFlight  = NewDomainError(CodeLookupsInFlight, "Aguarde a conclusão das consultas em andamento")
)
