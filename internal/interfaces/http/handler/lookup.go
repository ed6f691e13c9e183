package handler

import (
	"context"

	"github.com/clientregistry/backend/internal/domain/enrichment"
	"github.com/gin-gonic/gin"
)

// Enricher fetches and normalizes registry data for one identifier
type Enricher interface {
	EnrichTaxID(ctx context.Context, taxID string) (enrichment.Patch, error)
	EnrichPostalCode(ctx context.Context, postalCode string) (enrichment.Patch, error)
}

// LookupHandler exposes the registry lookups directly
type LookupHandler struct {
	BaseHandler
	enricher Enricher
}

// NewLookupHandler creates a new LookupHandler
func NewLookupHandler(enricher Enricher) *LookupHandler {
	return &LookupHandler{enricher: enricher}
}

// TaxID godoc
// @ID           lookupCNPJ
// @Summary      Look up a CNPJ
// @Description  Queries the public CNPJ registry and returns the normalized fields
// @Tags         lookups
// @Produce      json
// @Param        cnpj path string true "14-digit CNPJ"
// @Success      200 {object} enrichment.Patch
// @Failure      400 {object} dto.ErrorResponse
// @Failure      429 {object} dto.ErrorResponse
// @Failure      502 {object} dto.ErrorResponse
// @Router       /lookups/cnpj/{cnpj} [get]
func (h *LookupHandler) TaxID(c *gin.Context) {
	patch, err := h.enricher.EnrichTaxID(c.Request.Context(), c.Param("cnpj"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, patch)
}

// PostalCode godoc
// @ID           lookupCEP
// @Summary      Look up a CEP
// @Description  Queries the postal code registry and returns the normalized address fields
// @Tags         lookups
// @Produce      json
// @Param        cep path string true "8-digit CEP"
// @Success      200 {object} enrichment.Patch
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      502 {object} dto.ErrorResponse
// @Router       /lookups/cep/{cep} [get]
func (h *LookupHandler) PostalCode(c *gin.Context) {
	patch, err := h.enricher.EnrichPostalCode(c.Request.Context(), c.Param("cep"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, patch)
}
