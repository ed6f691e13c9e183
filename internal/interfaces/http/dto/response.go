package dto

// ErrorResponse is the body of every error reply. error carries the
// user-facing message; fields lists per-field validation messages.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: message,
		Code:  code,
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) ErrorResponse {
	resp := NewErrorResponse(code, message)
	resp.RequestID = requestID
	return resp
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Database string `json:"database" example:"connected"`
}

// OpenDraftRequest is the optional body of POST /drafts
type OpenDraftRequest struct {
	ClientID int64 `json:"clientId" binding:"omitempty,min=1"`
}

// DraftFields is the body of PATCH /drafts/:id, keyed by client field name
type DraftFields map[string]string
