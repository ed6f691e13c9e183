package handler

import (
	"context"

	appclient "github.com/clientregistry/backend/internal/application/client"
	"github.com/gin-gonic/gin"
)

// ClientService is the client use-case surface the handler needs
type ClientService interface {
	Create(ctx context.Context, req appclient.CreateClientRequest) (*appclient.ClientResponse, error)
	GetByID(ctx context.Context, id int64) (*appclient.ClientResponse, error)
	Update(ctx context.Context, id int64, req appclient.UpdateClientRequest) (*appclient.ClientResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q appclient.ListClientsQuery) (*appclient.ListClientsResponse, error)
}

// ClientHandler handles client CRUD endpoints
type ClientHandler struct {
	BaseHandler
	clients ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// ListClientsParams is the query string of GET /clients.
// Page and Limit are pointers so an explicit 0 is rejected rather than defaulted.
type ListClientsParams struct {
	Page  *int   `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit *int   `form:"limit" binding:"omitempty,min=1" example:"10"`
	Nome  string `form:"nome" example:"Empresa Exemplo Ltda"`
	Cnpj  string `form:"cnpj" example:"11222333000181"`
	Sort  string `form:"sort" example:"nome"`
	Order string `form:"order" binding:"omitempty,oneof=asc desc ASC DESC" example:"asc"`
}

// Query converts the params to the service query; absent paging stays 0
func (p ListClientsParams) Query() appclient.ListClientsQuery {
	q := appclient.ListClientsQuery{
		Nome:  p.Nome,
		Cnpj:  p.Cnpj,
		Sort:  p.Sort,
		Order: p.Order,
	}
	if p.Page != nil {
		q.Page = *p.Page
	}
	if p.Limit != nil {
		q.Limit = *p.Limit
	}
	return q
}

// List godoc
// @ID           listClients
// @Summary      List clients
// @Description  Paginated list with optional exact-match filters (combined with AND)
// @Tags         clients
// @Produce      json
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Page size" default(10)
// @Param        nome  query string false "Exact legal name"
// @Param        cnpj  query string false "Exact CNPJ"
// @Param        sort  query string false "Sort column (id, nome, cnpj, cidade, uf, created_at, updated_at)" default(id)
// @Param        order query string false "asc or desc" default(asc)
// @Success      200 {object} appclient.ListClientsResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	var params ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.InvalidQuery(c, err)
		return
	}

	resp, err := h.clients.List(c.Request.Context(), params.Query())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Get godoc
// @ID           getClient
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Param        id path int true "Client ID"
// @Success      200 {object} appclient.ClientResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.clients.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Create godoc
// @ID           createClient
// @Summary      Create a client
// @Description  Validates the record and rejects a CNPJ that is already registered
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Makes a retried request safe"
// @Param        request body appclient.CreateClientRequest true "Client record"
// @Success      201 {object} appclient.ClientResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req appclient.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidBody(c, err)
		return
	}

	resp, err := h.clients.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updateClient
// @Summary      Update a client
// @Description  Partial update: omitted fields keep their stored value
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id path int true "Client ID"
// @Param        request body appclient.UpdateClientRequest true "Fields to change"
// @Success      200 {object} appclient.ClientResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req appclient.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidBody(c, err)
		return
	}

	resp, err := h.clients.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Delete godoc
// @ID           deleteClient
// @Summary      Delete a client
// @Tags         clients
// @Param        id path int true "Client ID"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
