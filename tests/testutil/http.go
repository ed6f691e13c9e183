package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Request describes one call made through DoJSON
type Request struct {
	Method  string
	Path    string
	Body    any
	Headers map[string]string
}

// DoJSON serves a request against h. A non-nil Body is sent as JSON.
func DoJSON(t *testing.T, h http.Handler, r Request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if r.Body != nil {
		body = ToJSONReader(t, r.Body)
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	req := httptest.NewRequest(method, r.Path, body)
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// DecodeJSON parses the response body into T
func DecodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var result T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "Failed to parse JSON response: %s", w.Body.String())
	return result
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
