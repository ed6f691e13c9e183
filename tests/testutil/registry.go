package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// RegistryServer stands in for both public registries. Tax IDs are served
// under /cnpj/{cnpj} and postal codes under /{cep}/json/, matching the
// real endpoints. Unknown identifiers answer 404 and {"erro": true}.
type RegistryServer struct {
	*httptest.Server

	mu          sync.Mutex
	companies   map[string]string
	addresses   map[string]string
	rateLimited int

	TaxIDHits  atomic.Int32
	PostalHits atomic.Int32
}

// NewRegistryServer starts a stub registry that is closed with the test
func NewRegistryServer(t *testing.T) *RegistryServer {
	t.Helper()

	rs := &RegistryServer{
		companies: make(map[string]string),
		addresses: make(map[string]string),
	}
	rs.Server = httptest.NewServer(http.HandlerFunc(rs.serve))
	t.Cleanup(rs.Close)
	return rs
}

// AddCompany registers the raw JSON body returned for a tax ID
func (rs *RegistryServer) AddCompany(taxID, body string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.companies[taxID] = body
}

// AddAddress registers the raw JSON body returned for a postal code
func (rs *RegistryServer) AddAddress(postalCode, body string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.addresses[postalCode] = body
}

// RateLimitNext makes the next n tax ID requests answer 429
func (rs *RegistryServer) RateLimitNext(n int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.rateLimited = n
}

func (rs *RegistryServer) serve(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	w.Header().Set("Content-Type", "application/json")

	rs.mu.Lock()
	defer rs.mu.Unlock()

	switch {
	case len(parts) == 2 && parts[0] == "cnpj":
		rs.TaxIDHits.Add(1)
		if rs.rateLimited > 0 {
			rs.rateLimited--
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		body, ok := rs.companies[parts[1]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":404,"titulo":"Não Encontrado"}`))
			return
		}
		_, _ = w.Write([]byte(body))

	case len(parts) == 2 && parts[1] == "json":
		rs.PostalHits.Add(1)
		body, ok := rs.addresses[parts[0]]
		if !ok {
			body = `{"erro": true}`
		}
		_, _ = w.Write([]byte(body))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
