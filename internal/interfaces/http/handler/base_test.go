package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/clientregistry/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", shared.NewDomainError(shared.CodeNotFound, "Cliente não encontrado"), http.StatusNotFound, dto.ErrCodeNotFound, "Cliente não encontrado"},
		{"duplicate", fmt.Errorf("create: %w", shared.NewDomainError(shared.CodeDuplicateKey, "CNPJ já cadastrado")), http.StatusBadRequest, dto.ErrCodeDuplicateKey, "CNPJ já cadastrado"},
		{"lookup failed", shared.ErrLookupFailed, http.StatusBadGateway, dto.ErrCodeLookupFailed, shared.ErrLookupFailed.Message},
		{"in flight", shared.ErrLookupsInFlight, http.StatusConflict, dto.ErrCodeLookupsInFlight, shared.ErrLookupsInFlight.Message},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, dto.ErrCodeInternal, dto.MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			router := newTestEngine()
			router.GET("/", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := doRequest(t, router, http.MethodGet, "/", nil)
			assert.Equal(t, tt.wantStatus, w.Code)

			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMsg, resp.Error)
			assert.NotEmpty(t, resp.RequestID)
			assert.NotContains(t, w.Body.String(), "db exploded")
		})
	}
}

func TestBaseHandler_HandleError_ValidationFields(t *testing.T) {
	h := &BaseHandler{}
	router := newTestEngine()
	router.GET("/", func(c *gin.Context) {
		h.HandleError(c, shared.NewValidationError(map[string]string{"cnpj": "CNPJ deve conter 14 dígitos"}))
	})

	w := doRequest(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Code)
	assert.Equal(t, map[string]string{"cnpj": "CNPJ deve conter 14 dígitos"}, resp.Fields)
}

func TestBaseHandler_ParseID(t *testing.T) {
	h := &BaseHandler{}
	router := newTestEngine()
	router.GET("/:id", func(c *gin.Context) {
		if id, ok := h.parseID(c, "id"); ok {
			c.JSON(http.StatusOK, id)
		}
	})

	assert.Equal(t, "42", doRequest(t, router, http.MethodGet, "/42", nil).Body.String())
	for _, bad := range []string{"abc", "0", "-3"} {
		w := doRequest(t, router, http.MethodGet, "/"+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.Equal(t, dto.MsgInvalidID, decodeError(t, w).Error)
	}
}
