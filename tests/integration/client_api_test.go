package integration

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	clientapp "github.com/clientregistry/backend/internal/application/client"
	"github.com/clientregistry/backend/internal/application/draft"
	enrichmentapp "github.com/clientregistry/backend/internal/application/enrichment"
	"github.com/clientregistry/backend/internal/infrastructure/cache"
	"github.com/clientregistry/backend/internal/infrastructure/config"
	"github.com/clientregistry/backend/internal/infrastructure/lookup"
	"github.com/clientregistry/backend/internal/infrastructure/persistence"
	"github.com/clientregistry/backend/internal/interfaces/http/dto"
	"github.com/clientregistry/backend/internal/interfaces/http/handler"
	"github.com/clientregistry/backend/internal/interfaces/http/router"
	"github.com/clientregistry/backend/tests/testutil"
)

const acmeCompany = `{
	"razao_social": "ACME COMERCIO LTDA",
	"estabelecimento": {
		"nome_fantasia": "ACME",
		"cep": "01310100",
		"logradouro": "AVENIDA PAULISTA",
		"bairro": "BELA VISTA",
		"email": "contato@acme.com.br",
		"ddd1": "11",
		"telefone1": "33334444",
		"cidade": {"nome": "São Paulo"},
		"estado": {"nome": "São Paulo", "sigla": "SP"}
	}
}`

const paulistaAddress = `{
	"cep": "01310-100",
	"logradouro": "Avenida Paulista",
	"complemento": "de 612 a 1510 - lado par",
	"bairro": "Bela Vista",
	"localidade": "São Paulo",
	"uf": "SP"
}`

const faria = `{
	"cep": "04538-133",
	"logradouro": "Avenida Brigadeiro Faria Lima",
	"complemento": "de 3253 ao fim - lado ímpar",
	"bairro": "Itaim Bibi",
	"localidade": "São Paulo",
	"uf": "SP"
}`

type apiFixture struct {
	engine   *gin.Engine
	registry *testutil.RegistryServer
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	tdb := NewTestDB(t)
	log := zaptest.NewLogger(t)

	registry := testutil.NewRegistryServer(t)
	registry.AddCompany("11222333000181", acmeCompany)
	registry.AddAddress("01310100", paulistaAddress)
	registry.AddAddress("04538133", faria)

	lookupCfg := lookup.DefaultConfig()
	lookupCfg.TaxIDBaseURL = registry.URL
	lookupCfg.PostalBaseURL = registry.URL
	lookupCfg.InitialDelay = 10 * time.Millisecond
	taxID, err := lookup.NewTaxIDClient(lookupCfg, lookup.WithLogger(log))
	require.NoError(t, err)
	postal, err := lookup.NewPostalClient(lookupCfg, lookup.WithLogger(log))
	require.NoError(t, err)

	enricher := enrichmentapp.NewService(taxID, postal)
	clients := clientapp.NewService(persistence.NewGormClientRepository(tdb.DB))
	drafts := draft.NewManager(enricher, clients, draft.DefaultConfig(), log)
	t.Cleanup(func() { _ = drafts.Close() })

	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	engine := router.NewEngine(router.EngineConfig{
		HTTP:        config.HTTPConfig{MaxBodySize: 1 << 20},
		ServiceName: "client-registry-test",
	}, log)
	r := router.NewRouter(engine)
	for _, g := range router.APIGroups(router.Handlers{
		Clients: handler.NewClientHandler(clients),
		Lookups: handler.NewLookupHandler(enricher),
		Drafts:  handler.NewDraftHandler(drafts),
		System:  handler.NewSystemHandler(tdb.SqlDB, "test"),
	}, router.Guards{Idempotency: store, IdempotencyTTL: time.Hour}) {
		r.Register(g)
	}
	r.Setup()

	return &apiFixture{engine: engine, registry: registry}
}

func TestClientAPI_CRUD(t *testing.T) {
	api := newAPI(t)

	created := testutil.DoJSON(t, api.engine, testutil.Request{
		Method: http.MethodPost,
		Path:   "/clients",
		Body: map[string]string{
			"cnpj": "11222333000181",
			"nome": "ACME LTDA",
			"cep":  "01310100",
		},
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	c := testutil.DecodeJSON[clientapp.ClientResponse](t, created)
	assert.NotZero(t, c.ID)

	dup := testutil.DoJSON(t, api.engine, testutil.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/clients",
		Body:   map[string]string{"cnpj": "11222333000181", "nome": "OUTRA", "cep": "01310100"},
	})
	assert.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, clientapp.MsgTaxIDTaken, testutil.DecodeJSON[dto.ErrorResponse](t, dup).Error)

	invalid := testutil.DoJSON(t, api.engine, testutil.Request{
		Method: http.MethodPost,
		Path:   "/clients",
		Body:   map[string]string{"cnpj": "123", "cep": "01310100"},
	})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	fields := testutil.DecodeJSON[dto.ErrorResponse](t, invalid).Fields
	assert.Contains(t, fields, "cnpj")
	assert.Contains(t, fields, "nome")

	path := "/clients/" + strconv.FormatInt(c.ID, 10)
	updated := testutil.DoJSON(t, api.engine, testutil.Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   map[string]string{"email": "contato@acme.com.br"},
	})
	require.Equal(t, http.StatusOK, updated.Code, updated.Body.String())
	u := testutil.DecodeJSON[clientapp.ClientResponse](t, updated)
	assert.Equal(t, "ACME LTDA", u.LegalName)
	assert.Equal(t, "contato@acme.com.br", u.Email)

	list := testutil.DoJSON(t, api.engine, testutil.Request{Path: "/clients?nome=ACME%20LTDA"})
	require.Equal(t, http.StatusOK, list.Code)
	l := testutil.DecodeJSON[clientapp.ListClientsResponse](t, list)
	assert.Equal(t, int64(1), l.Total)

	assert.Equal(t, http.StatusNoContent, testutil.DoJSON(t, api.engine, testutil.Request{Method: http.MethodDelete, Path: path}).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(t, api.engine, testutil.Request{Path: path}).Code)
}

func TestClientAPI_Lookups(t *testing.T) {
	api := newAPI(t)

	w := testutil.DoJSON(t, api.engine, testutil.Request{Path: "/lookups/cnpj/11222333000181"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patch := testutil.DecodeJSON[map[string]string](t, w)
	assert.Equal(t, "ACME COMERCIO LTDA", patch["nome"])
	assert.Equal(t, "SP", patch["uf"])
	assert.Equal(t, "1133334444", patch["telefone"])

	api.registry.RateLimitNext(2)
	w = testutil.DoJSON(t, api.engine, testutil.Request{Path: "/lookups/cnpj/11222333000181"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoJSON(t, api.engine, testutil.Request{Path: "/lookups/cep/99999999"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.DoJSON(t, api.engine, testutil.Request{Path: "/lookups/cep/0131"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientAPI_DraftFlow(t *testing.T) {
	api := newAPI(t)

	opened := testutil.DoJSON(t, api.engine, testutil.Request{Method: http.MethodPost, Path: "/drafts"})
	require.Equal(t, http.StatusCreated, opened.Code, opened.Body.String())
	snap := testutil.DecodeJSON[draft.Snapshot](t, opened)
	require.NotEmpty(t, snap.ID)

	edited := testutil.DoJSON(t, api.engine, testutil.Request{
		Method: http.MethodPatch,
		Path:   "/drafts/" + snap.ID + "?wait=true",
		Body:   map[string]string{"cnpj": "11222333000181"},
	})
	require.Equal(t, http.StatusOK, edited.Code, edited.Body.String())
	snap = testutil.DecodeJSON[draft.Snapshot](t, edited)
	assert.Zero(t, snap.InFlight)
	assert.True(t, snap.Watches.TaxID)
	assert.Equal(t, "ACME COMERCIO LTDA", snap.Draft.LegalName)
	assert.Equal(t, "01310100", snap.Draft.PostalCode)
	assert.Equal(t, "São Paulo", snap.Draft.City)
	assert.True(t, snap.Watches.PostalCode)
	assert.Equal(t, "Avenida Paulista", snap.Draft.Street, "the postal code from the tax ID lookup starts a postal lookup")
	assert.EqualValues(t, 1, api.registry.PostalHits.Load())

	submitted := testutil.DoJSON(t, api.engine, testutil.Request{Method: http.MethodPost, Path: "/drafts/" + snap.ID + "/submit"})
	require.Equal(t, http.StatusCreated, submitted.Code, submitted.Body.String())
	c := testutil.DecodeJSON[clientapp.ClientResponse](t, submitted)
	assert.Equal(t, "11222333000181", c.TaxID)

	// reopen for editing; resending the stored postal code starts nothing
	reopened := testutil.DoJSON(t, api.engine, testutil.Request{
		Method: http.MethodPost,
		Path:   "/drafts",
		Body:   map[string]int64{"clientId": c.ID},
	})
	require.Equal(t, http.StatusCreated, reopened.Code, reopened.Body.String())
	snap = testutil.DecodeJSON[draft.Snapshot](t, reopened)
	assert.Equal(t, c.ID, snap.ClientID)

	edited = testutil.DoJSON(t, api.engine, testutil.Request{
		Method: http.MethodPatch,
		Path:   "/drafts/" + snap.ID + "?wait=true",
		Body:   map[string]string{"cep": "01310100", "logradouro": "Rua Nova"},
	})
	require.Equal(t, http.StatusOK, edited.Code)
	snap = testutil.DecodeJSON[draft.Snapshot](t, edited)
	assert.Equal(t, "Rua Nova", snap.Draft.Street)
	assert.EqualValues(t, 1, api.registry.PostalHits.Load())

	// a new postal code overwrites the address fields
	edited = testutil.DoJSON(t, api.engine, testutil.Request{
		Method: http.MethodPatch,
		Path:   "/drafts/" + snap.ID + "?wait=true",
		Body:   map[string]string{"cep": "04538133"},
	})
	require.Equal(t, http.StatusOK, edited.Code)
	snap = testutil.DecodeJSON[draft.Snapshot](t, edited)
	assert.Equal(t, "Avenida Brigadeiro Faria Lima", snap.Draft.Street)
	assert.Equal(t, "Itaim Bibi", snap.Draft.District)

	submitted = testutil.DoJSON(t, api.engine, testutil.Request{Method: http.MethodPost, Path: "/drafts/" + snap.ID + "/submit"})
	require.Equal(t, http.StatusOK, submitted.Code, submitted.Body.String())
	assert.Equal(t, "Avenida Brigadeiro Faria Lima", testutil.DecodeJSON[clientapp.ClientResponse](t, submitted).Street)
}

func TestClientAPI_Health(t *testing.T) {
	api := newAPI(t)

	w := testutil.DoJSON(t, api.engine, testutil.Request{Path: "/health"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", testutil.DecodeJSON[dto.HealthResponse](t, w).Status)
}
