package enrichment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		kind     PlaceKind
		wantName string
		wantCode string
	}{
		{"plain string", `"Curitiba"`, PlacePlain, "Curitiba", "Curitiba"},
		{"named object", `{"nome": "Curitiba"}`, PlaceNamed, "Curitiba", ""},
		{"state object", `{"nome": "Paraná", "sigla": "PR"}`, PlaceNamed, "Paraná", "PR"},
		{"null", `null`, PlaceAbsent, "", ""},
		{"number", `4106902`, PlaceAbsent, "", ""},
		{"array", `["Curitiba"]`, PlaceAbsent, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Place
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))

			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.wantName, p.Name())
			assert.Equal(t, tt.wantCode, p.Code())
		})
	}
}

func TestPlace_MissingKeyIsAbsent(t *testing.T) {
	var e Establishment
	require.NoError(t, json.Unmarshal([]byte(`{}`), &e))

	assert.Equal(t, PlaceAbsent, e.City.Kind)
	assert.Equal(t, "", e.City.Name())
}

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want Text
	}{
		{`"11"`, "11"},
		{`11`, "11"},
		{`null`, ""},
		{`true`, ""},
	}

	for _, tt := range tests {
		var v Text
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &v), tt.raw)
		assert.Equal(t, tt.want, v, tt.raw)
	}
}
