package dto

import (
	"net/http"

	"github.com/clientregistry/backend/internal/domain/shared"
)

// Domain error codes, re-exported so handlers and middleware share one table
const (
	ErrCodeNotFound        = shared.CodeNotFound
	ErrCodeDuplicateKey    = shared.CodeDuplicateKey
	ErrCodeValidation      = shared.CodeValidationFailed
	ErrCodeLookupFailed    = shared.CodeLookupFailed
	ErrCodeInvalidInput    = shared.CodeInvalidInput
	ErrCodeInvalidState    = shared.CodeInvalidState
	ErrCodeLookupsInFlight = shared.CodeLookupsInFlight
)

// Transport error codes
const (
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
	ErrCodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	ErrCodeForbidden        = "FORBIDDEN"
)

// Messages for transport errors
const (
	MsgInternal         = "Erro interno do servidor"
	MsgInvalidJSON      = "Corpo da requisição inválido"
	MsgInvalidQuery     = "Parâmetros de consulta inválidos"
	MsgInvalidID        = "ID inválido"
	MsgRateLimited      = "Muitas requisições. Tente novamente mais tarde."
	MsgDuplicateRequest = "Requisição já processada"
	MsgPayloadTooLarge  = "Corpo da requisição muito grande"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Duplicate tax IDs and validation failures are 400.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeDuplicateKey:    http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeLookupFailed:    http.StatusBadGateway,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidState:    http.StatusConflict,
	ErrCodeLookupsInFlight: http.StatusConflict,

	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidJSON:      http.StatusBadRequest,
	ErrCodeRateLimited:      http.StatusTooManyRequests,
	ErrCodeDuplicateRequest: http.StatusConflict,
	ErrCodePayloadTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeForbidden:        http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes are 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
