package enrichment

import (
	"encoding/json"
	"testing"

	"github.com/clientregistry/backend/internal/domain/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taxIDProfileJSON = `{
	"razao_social": "EMPRESA EXEMPLO LTDA",
	"estabelecimento": {
		"nome_fantasia": "EXEMPLO",
		"cep": "01310100",
		"logradouro": "AVENIDA PAULISTA",
		"bairro": "BELA VISTA",
		"complemento": "ANDAR 10",
		"email": "contato@exemplo.com.br",
		"ddd1": "11",
		"telefone1": "3333-4444",
		"cidade": {"id": 3550308, "nome": "São Paulo", "ibge_id": 3550308},
		"estado": {"id": 26, "nome": "São Paulo", "sigla": "SP", "ibge_id": 35}
	}
}`

func decodeTaxID(t *testing.T, raw string) *TaxIDProfile {
	t.Helper()
	var p TaxIDProfile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func TestMergeTaxIDProfile(t *testing.T) {
	t.Run("maps a full registry profile", func(t *testing.T) {
		patch := MergeTaxIDProfile(decodeTaxID(t, taxIDProfileJSON))

		var d client.Details
		patch.ApplyTo(&d)

		assert.Equal(t, client.Details{
			LegalName:  "EMPRESA EXEMPLO LTDA",
			TradeName:  "EXEMPLO",
			PostalCode: "01310100",
			Street:     "AVENIDA PAULISTA",
			District:   "BELA VISTA",
			City:       "São Paulo",
			Region:     "SP",
			Complement: "ANDAR 10",
			Email:      "contato@exemplo.com.br",
			Phone:      "1133334444",
		}, d)
		assert.Equal(t, SourceTaxID, patch.Source)
	})

	t.Run("city as plain string", func(t *testing.T) {
		p := decodeTaxID(t, `{"estabelecimento": {"cidade": "São Paulo"}}`)
		assert.Equal(t, "São Paulo", *MergeTaxIDProfile(p).City)
	})

	t.Run("city as named object", func(t *testing.T) {
		p := decodeTaxID(t, `{"estabelecimento": {"cidade": {"nome": "São Paulo"}}}`)
		assert.Equal(t, "São Paulo", *MergeTaxIDProfile(p).City)
	})

	t.Run("city of another shape is empty", func(t *testing.T) {
		p := decodeTaxID(t, `{"estabelecimento": {"cidade": 42}}`)
		assert.Equal(t, "", *MergeTaxIDProfile(p).City)
	})

	t.Run("plain uf wins over state object", func(t *testing.T) {
		p := decodeTaxID(t, `{"estabelecimento": {"uf": "RJ", "estado": {"sigla": "SP"}}}`)
		assert.Equal(t, "RJ", *MergeTaxIDProfile(p).Region)
	})

	t.Run("region from state object", func(t *testing.T) {
		p := decodeTaxID(t, `{"estabelecimento": {"estado": {"sigla": "MG"}}}`)
		assert.Equal(t, "MG", *MergeTaxIDProfile(p).Region)
	})

	t.Run("phone needs both area code and number", func(t *testing.T) {
		p := decodeTaxID(t, `{"estabelecimento": {"ddd1": "11"}}`)
		assert.Equal(t, "", *MergeTaxIDProfile(p).Phone)

		p = decodeTaxID(t, `{"estabelecimento": {"telefone1": "33334444"}}`)
		assert.Equal(t, "", *MergeTaxIDProfile(p).Phone)
	})

	t.Run("numeric phone parts are accepted", func(t *testing.T) {
		p := decodeTaxID(t, `{"estabelecimento": {"ddd1": 21, "telefone1": 25554444}}`)
		assert.Equal(t, "2125554444", *MergeTaxIDProfile(p).Phone)
	})

	t.Run("absent fields become empty strings", func(t *testing.T) {
		patch := MergeTaxIDProfile(decodeTaxID(t, `{}`))

		assert.Len(t, patch.Fields(), 10)
		for _, f := range patch.Fields() {
			d := client.Details{}
			require.NoError(t, d.Set(f, "previous"))
			patch.ApplyTo(&d)
			assert.Empty(t, d.Get(f), "field %s", f)
		}
	})

	t.Run("top level trade name takes precedence", func(t *testing.T) {
		p := decodeTaxID(t, `{"nome_fantasia": "TOPO", "estabelecimento": {"nome_fantasia": "BAIXO"}}`)
		assert.Equal(t, "TOPO", *MergeTaxIDProfile(p).TradeName)
	})

	t.Run("nil profile", func(t *testing.T) {
		assert.Equal(t, "", *MergeTaxIDProfile(nil).LegalName)
	})
}

func TestMergePostalProfile(t *testing.T) {
	raw := `{"cep": "01310-100", "logradouro": "Avenida Paulista", "complemento": "de 612 a 1510 - lado par",
		"bairro": "Bela Vista", "localidade": "São Paulo", "uf": "SP"}`
	var p PostalProfile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	patch := MergePostalProfile(&p)

	assert.ElementsMatch(t, []client.Field{
		client.FieldStreet, client.FieldDistrict, client.FieldCity, client.FieldRegion, client.FieldComplement,
	}, patch.Fields())

	d := client.Details{TaxID: "11222333000181", LegalName: "ACME", PostalCode: "01310100", Email: "a@b.com"}
	patch.ApplyTo(&d)

	assert.Equal(t, "Avenida Paulista", d.Street)
	assert.Equal(t, "Bela Vista", d.District)
	assert.Equal(t, "São Paulo", d.City)
	assert.Equal(t, "SP", d.Region)
	assert.Equal(t, "de 612 a 1510 - lado par", d.Complement)
	// fields outside the postal patch are untouched
	assert.Equal(t, "01310100", d.PostalCode)
	assert.Equal(t, "ACME", d.LegalName)
	assert.Equal(t, "a@b.com", d.Email)
}

func TestPostalProfile_NotFoundFlag(t *testing.T) {
	for _, raw := range []string{`{"erro": true}`, `{"erro": "true"}`} {
		var p PostalProfile
		require.NoError(t, json.Unmarshal([]byte(raw), &p))
		assert.True(t, bool(p.NotFound), raw)
	}

	var p PostalProfile
	require.NoError(t, json.Unmarshal([]byte(`{"logradouro": "Rua A"}`), &p))
	assert.False(t, bool(p.NotFound))
}
