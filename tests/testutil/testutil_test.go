package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]string
		require.NoError(t, c.ShouldBindJSON(&body))
		body["header"] = c.GetHeader("X-Test")
		c.JSON(http.StatusCreated, body)
	})

	w := DoJSON(t, engine, Request{
		Method:  http.MethodPost,
		Path:    "/echo",
		Body:    map[string]string{"nome": "ACME"},
		Headers: map[string]string{"X-Test": "yes"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	got := DecodeJSON[map[string]string](t, w)
	assert.Equal(t, "ACME", got["nome"])
	assert.Equal(t, "yes", got["header"])
}

func TestRegistryServer(t *testing.T) {
	rs := NewRegistryServer(t)
	rs.AddCompany("11222333000181", `{"razao_social":"ACME LTDA"}`)
	rs.AddAddress("01310100", `{"cep":"01310-100","localidade":"São Paulo"}`)

	get := func(path string) (int, map[string]any) {
		resp, err := http.Get(rs.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var body map[string]any
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &body))
		}
		return resp.StatusCode, body
	}

	status, body := get("/cnpj/11222333000181")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ACME LTDA", body["razao_social"])

	status, _ = get("/cnpj/00000000000000")
	assert.Equal(t, http.StatusNotFound, status)

	rs.RateLimitNext(1)
	status, _ = get("/cnpj/11222333000181")
	assert.Equal(t, http.StatusTooManyRequests, status)
	status, _ = get("/cnpj/11222333000181")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int32(4), rs.TaxIDHits.Load())

	status, body = get("/01310100/json/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "São Paulo", body["localidade"])

	_, body = get("/99999999/json/")
	assert.Equal(t, true, body["erro"])
	assert.Equal(t, int32(2), rs.PostalHits.Load())
}

func TestRequireEventually(t *testing.T) {
	var n atomic.Int32
	RequireEventually(t, func() bool { return n.Add(1) >= 3 }, time.Second, time.Millisecond)
	assert.GreaterOrEqual(t, n.Load(), int32(3))
}

func TestAssertNever(t *testing.T) {
	AssertNever(t, func() bool { return false }, 20*time.Millisecond, 5*time.Millisecond)
}
