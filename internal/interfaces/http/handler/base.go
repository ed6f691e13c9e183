package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/clientregistry/backend/internal/infrastructure/logger"
	"github.com/clientregistry/backend/internal/interfaces/http/dto"
	"github.com/clientregistry/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID returns the ID assigned by the RequestID middleware,
// falling back to the raw header.
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// OK sends a 200 response with data as the body
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with data as the body
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response, deriving the status from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	h.respondError(c, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// InvalidBody answers a body that could not be bound. Validator errors
// become per-field messages; anything else is malformed JSON.
func (h *BaseHandler) InvalidBody(c *gin.Context, err error) {
	if fields := middleware.ValidationFields(err); fields != nil {
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeValidation, shared.NewValidationError(fields).Message, getRequestID(c))
		resp.Fields = fields
		h.respondError(c, resp)
		return
	}
	h.Error(c, dto.ErrCodeInvalidJSON, dto.MsgInvalidJSON)
}

// InvalidQuery answers a query string that could not be bound. Validator
// errors become per-field messages; anything else is a bad request.
func (h *BaseHandler) InvalidQuery(c *gin.Context, err error) {
	if fields := middleware.ValidationFields(err); fields != nil {
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeValidation, shared.NewValidationError(fields).Message, getRequestID(c))
		resp.Fields = fields
		h.respondError(c, resp)
		return
	}
	h.BadRequest(c, dto.MsgInvalidQuery)
}

// HandleError converts domain errors to HTTP responses. Anything that is
// not a DomainError is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		resp := dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, getRequestID(c))
		resp.Fields = domainErr.Fields
		h.respondError(c, resp)
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
	_ = c.Error(err)
	h.Error(c, dto.ErrCodeInternal, dto.MsgInternal)
}

func (h *BaseHandler) respondError(c *gin.Context, resp dto.ErrorResponse) {
	c.Set(middleware.ErrorCodeKey, resp.Code)
	c.AbortWithStatusJSON(dto.GetHTTPStatus(resp.Code), resp)
}

// parseID reads a positive integer path parameter, answering 400 when it is not one
func (h *BaseHandler) parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, dto.MsgInvalidID)
		return 0, false
	}
	return id, true
}
