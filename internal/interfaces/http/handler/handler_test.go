package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appclient "github.com/clientregistry/backend/internal/application/client"
	"github.com/clientregistry/backend/internal/interfaces/http/dto"
	"github.com/clientregistry/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MockClientService is a testify mock of ClientService. It also satisfies
// draft.ClientWriter.
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) Create(ctx context.Context, req appclient.CreateClientRequest) (*appclient.ClientResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appclient.ClientResponse), args.Error(1)
}

func (m *MockClientService) GetByID(ctx context.Context, id int64) (*appclient.ClientResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appclient.ClientResponse), args.Error(1)
}

func (m *MockClientService) Update(ctx context.Context, id int64, req appclient.UpdateClientRequest) (*appclient.ClientResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appclient.ClientResponse), args.Error(1)
}

func (m *MockClientService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientService) List(ctx context.Context, q appclient.ListClientsQuery) (*appclient.ListClientsResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appclient.ListClientsResponse), args.Error(1)
}

func newTestEngine() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func mustField(t *testing.T, w *httptest.ResponseRecorder, name string) json.RawMessage {
	t.Helper()
	fields := decodeJSON[map[string]json.RawMessage](t, w)
	v, ok := fields[name]
	require.True(t, ok, "missing field %q", name)
	return v
}
