package handler

import (
	"net/http"
	"testing"

	appclient "github.com/clientregistry/backend/internal/application/client"
	"github.com/clientregistry/backend/internal/domain/client"
	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/clientregistry/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newClientRouter(svc ClientService) *gin.Engine {
	h := NewClientHandler(svc)
	router := newTestEngine()
	router.GET("/clients", h.List)
	router.GET("/clients/:id", h.Get)
	router.POST("/clients", h.Create)
	router.PUT("/clients/:id", h.Update)
	router.DELETE("/clients/:id", h.Delete)
	return router
}

func sampleResponse() *appclient.ClientResponse {
	return &appclient.ClientResponse{
		ID:         1,
		TaxID:      "11222333000181",
		LegalName:  "Empresa Exemplo Ltda",
		PostalCode: "01310100",
		City:       "São Paulo",
		Region:     "SP",
	}
}

func TestClientHandler_List(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		svc := new(MockClientService)
		q := appclient.ListClientsQuery{Page: 2, Limit: 5, Nome: "Empresa Exemplo Ltda"}
		svc.On("List", mock.Anything, q).Return(&appclient.ListClientsResponse{
			Total:   6,
			Clients: []appclient.ClientResponse{*sampleResponse()},
		}, nil)

		w := doRequest(t, newClientRouter(svc), http.MethodGet, "/clients?page=2&limit=5&nome=Empresa%20Exemplo%20Ltda", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeJSON[appclient.ListClientsResponse](t, w)
		assert.Equal(t, int64(6), resp.Total)
		assert.Len(t, resp.Clients, 1)
		svc.AssertExpectations(t)
	})

	t.Run("rejects page zero", func(t *testing.T) {
		svc := new(MockClientService)
		w := doRequest(t, newClientRouter(svc), http.MethodGet, "/clients?page=0", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Code)
		assert.Contains(t, resp.Fields, "page")
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("passes sort and large limits through", func(t *testing.T) {
		svc := new(MockClientService)
		q := appclient.ListClientsQuery{Limit: 500, Sort: "nome", Order: "desc"}
		svc.On("List", mock.Anything, q).Return(&appclient.ListClientsResponse{Clients: []appclient.ClientResponse{}}, nil)

		w := doRequest(t, newClientRouter(svc), http.MethodGet, "/clients?limit=500&sort=nome&order=desc", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("absent paging is left to the service", func(t *testing.T) {
		svc := new(MockClientService)
		svc.On("List", mock.Anything, appclient.ListClientsQuery{}).Return(&appclient.ListClientsResponse{Clients: []appclient.ClientResponse{}}, nil)

		w := doRequest(t, newClientRouter(svc), http.MethodGet, "/clients", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("rejects unknown sort direction", func(t *testing.T) {
		svc := new(MockClientService)
		w := doRequest(t, newClientRouter(svc), http.MethodGet, "/clients?order=sideways", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Fields, "order")
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("non-numeric page is a bad query", func(t *testing.T) {
		svc := new(MockClientService)
		w := doRequest(t, newClientRouter(svc), http.MethodGet, "/clients?page=abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Code)
		assert.Equal(t, dto.MsgInvalidQuery, resp.Error)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestClientHandler_Create(t *testing.T) {
	req := appclient.CreateClientRequest{
		TaxID:      "11222333000181",
		LegalName:  "Empresa Exemplo Ltda",
		PostalCode: "01310100",
	}

	t.Run("created", func(t *testing.T) {
		svc := new(MockClientService)
		svc.On("Create", mock.Anything, req).Return(sampleResponse(), nil)

		w := doRequest(t, newClientRouter(svc), http.MethodPost, "/clients", req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `"11222333000181"`, string(mustField(t, w, "cnpj")))
		svc.AssertExpectations(t)
	})

	t.Run("duplicate tax ID", func(t *testing.T) {
		svc := new(MockClientService)
		svc.On("Create", mock.Anything, req).
			Return(nil, shared.NewDomainError(shared.CodeDuplicateKey, appclient.MsgTaxIDTaken))

		w := doRequest(t, newClientRouter(svc), http.MethodPost, "/clients", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, appclient.MsgTaxIDTaken, decodeError(t, w).Error)
	})

	t.Run("validation failure carries fields", func(t *testing.T) {
		svc := new(MockClientService)
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, shared.NewValidationError(map[string]string{"cnpj": client.MsgTaxIDLength}))

		w := doRequest(t, newClientRouter(svc), http.MethodPost, "/clients", map[string]string{"cnpj": "123"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]string{"cnpj": client.MsgTaxIDLength}, decodeError(t, w).Fields)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		svc := new(MockClientService)
		w := doRequest(t, newClientRouter(svc), http.MethodPost, "/clients", `{"cnpj":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decodeError(t, w).Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestClientHandler_Get(t *testing.T) {
	svc := new(MockClientService)
	svc.On("GetByID", mock.Anything, int64(1)).Return(sampleResponse(), nil)
	svc.On("GetByID", mock.Anything, int64(99)).
		Return(nil, shared.NewDomainError(shared.CodeNotFound, appclient.MsgClientNotFound))
	router := newClientRouter(svc)

	assert.Equal(t, http.StatusOK, doRequest(t, router, http.MethodGet, "/clients/1", nil).Code)

	w := doRequest(t, router, http.MethodGet, "/clients/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, appclient.MsgClientNotFound, decodeError(t, w).Error)

	assert.Equal(t, http.StatusBadRequest, doRequest(t, router, http.MethodGet, "/clients/abc", nil).Code)
}

func TestClientHandler_Update(t *testing.T) {
	city := "Campinas"
	svc := new(MockClientService)
	svc.On("Update", mock.Anything, int64(1), appclient.UpdateClientRequest{City: &city}).Return(sampleResponse(), nil)
	svc.On("Update", mock.Anything, int64(2), mock.Anything).
		Return(nil, shared.NewDomainError(shared.CodeDuplicateKey, appclient.MsgTaxIDTakenByOther))
	router := newClientRouter(svc)

	w := doRequest(t, router, http.MethodPut, "/clients/1", map[string]string{"cidade": "Campinas"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPut, "/clients/2", map[string]string{"cnpj": "99888777000166"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appclient.MsgTaxIDTakenByOther, decodeError(t, w).Error)
	svc.AssertExpectations(t)
}

func TestClientHandler_Delete(t *testing.T) {
	svc := new(MockClientService)
	svc.On("Delete", mock.Anything, int64(1)).Return(nil)
	svc.On("Delete", mock.Anything, int64(2)).Return(shared.NewDomainError(shared.CodeNotFound, appclient.MsgClientNotFound))
	router := newClientRouter(svc)

	w := doRequest(t, router, http.MethodDelete, "/clients/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodDelete, "/clients/2", nil).Code)
}
