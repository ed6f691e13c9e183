package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/clientregistry/backend/internal/application/draft"
	"github.com/clientregistry/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DraftHandler drives draft sessions: edits that trigger registry
// lookups, then a validated submit.
type DraftHandler struct {
	BaseHandler
	drafts *draft.Manager
}

// NewDraftHandler creates a new DraftHandler
func NewDraftHandler(drafts *draft.Manager) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Open godoc
// @ID           openDraft
// @Summary      Open a draft
// @Description  Starts an empty draft, or one seeded from a stored client when clientId is given
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        request body dto.OpenDraftRequest false "Optional seed"
// @Success      201 {object} draft.Snapshot
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /drafts [post]
func (h *DraftHandler) Open(c *gin.Context) {
	var req dto.OpenDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.InvalidBody(c, err)
		return
	}

	s, err := h.drafts.Open(c.Request.Context(), req.ClientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, s.Snapshot())
}

// Get godoc
// @ID           getDraft
// @Summary      Get a draft
// @Description  Current draft values, lookup notices and in-flight count. wait=true blocks until lookups settle.
// @Tags         drafts
// @Produce      json
// @Param        id   path  string true  "Draft ID"
// @Param        wait query bool   false "Wait for in-flight lookups"
// @Success      200 {object} draft.Snapshot
// @Failure      404 {object} dto.ErrorResponse
// @Router       /drafts/{id} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	s, err := h.drafts.Get(c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.maybeWait(c, s) {
		return
	}
	h.OK(c, s.Snapshot())
}

// Edit godoc
// @ID           editDraft
// @Summary      Edit draft fields
// @Description  Sets fields by name. A 14-character cnpj or an 8-character cep starts a background lookup.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id      path  string          true  "Draft ID"
// @Param        wait    query bool            false "Wait for the lookups this edit started"
// @Param        request body  dto.DraftFields true  "Field values keyed by name"
// @Success      200 {object} draft.Snapshot
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /drafts/{id} [patch]
func (h *DraftHandler) Edit(c *gin.Context) {
	s, err := h.drafts.Get(c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var fields dto.DraftFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		h.InvalidBody(c, err)
		return
	}
	if err := s.SetFields(c.Request.Context(), fields); err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.maybeWait(c, s) {
		return
	}
	h.OK(c, s.Snapshot())
}

// Submit godoc
// @ID           submitDraft
// @Summary      Submit a draft
// @Description  Validates the draft and creates (201) or updates (200) the client. Refused while lookups are in flight.
// @Tags         drafts
// @Produce      json
// @Param        id              path   string true  "Draft ID"
// @Param        Idempotency-Key header string false "Makes a retried request safe"
// @Success      200 {object} appclient.ClientResponse
// @Success      201 {object} appclient.ClientResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *gin.Context) {
	resp, created, err := h.drafts.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if created {
		h.Created(c, resp)
		return
	}
	h.OK(c, resp)
}

// Discard godoc
// @ID           discardDraft
// @Summary      Discard a draft
// @Description  Closes the draft without saving. Refused while lookups are in flight.
// @Tags         drafts
// @Param        id path string true "Draft ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /drafts/{id} [delete]
func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.drafts.Discard(c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// maybeWait blocks on in-flight lookups when the caller asked for it.
// It reports false after answering the request itself.
func (h *DraftHandler) maybeWait(c *gin.Context, s *draft.Session) bool {
	if c.Query("wait") != "true" {
		return true
	}
	if err := s.Wait(c.Request.Context()); err != nil {
		c.AbortWithStatus(http.StatusRequestTimeout)
		return false
	}
	return true
}
