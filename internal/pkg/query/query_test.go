package query_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockadmin/internal/domain"
	"stockadmin/internal/pkg/query"
)

func intPtr(v int) *int { return &v }

func TestBuild_OmiteValoresAusentes(t *testing.T) {
	var nilInt *int
	var nilTipo *domain.TipoProduto

	values := query.Build(map[string]any{
		"page":      0,
		"size":      10,
		"sort":      "codigo,desc",
		"tipo":      "",
		"descricao": nil,
		"codigo":    nilInt,
		"categoria": nilTipo,
	})

	assert.Equal(t, "0", values.Get("page"))
	assert.Equal(t, "10", values.Get("size"))
	assert.Equal(t, "codigo,desc", values.Get("sort"))
	assert.NotContains(t, values, "tipo")
	assert.NotContains(t, values, "descricao")
	assert.NotContains(t, values, "codigo")
	assert.NotContains(t, values, "categoria")
	assert.Len(t, values, 3)
}

func TestBuild_ConverteEscalares(t *testing.T) {
	codigo := int64(7)
	tipo := domain.TipoEletronico

	values := query.Build(map[string]any{
		"codigoProduto":    &codigo,
		"tipoMovimentacao": domain.MovimentacaoSaida,
		"tipo":             &tipo,
		"ativo":            true,
		"fator":            1.5,
		"size":             intPtr(25),
	})

	assert.Equal(t, "7", values.Get("codigoProduto"))
	assert.Equal(t, "SAIDA", values.Get("tipoMovimentacao"))
	assert.Equal(t, "ELETRONICO", values.Get("tipo"))
	assert.Equal(t, "true", values.Get("ativo"))
	assert.Equal(t, "1.5", values.Get("fator"))
	assert.Equal(t, "25", values.Get("size"))
}

func TestBuild_NaNPassaComoTexto(t *testing.T) {
	values := query.Build(map[string]any{"page": math.NaN()})

	assert.Equal(t, "NaN", values.Get("page"))
}

func TestBuild_EntradaNil(t *testing.T) {
	values := query.Build(nil)

	assert.NotNil(t, values)
	assert.Empty(t, values)
	assert.Equal(t, "", values.Encode())
}

func TestBuild_Deterministico(t *testing.T) {
	params := map[string]any{"b": 2, "a": "x", "c": nil}

	first := query.Build(params).Encode()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, query.Build(params).Encode())
	}
	assert.Equal(t, "a=x&b=2", first)
}

func TestMerge_DefaultsPreservadosQuandoAusente(t *testing.T) {
	defaults := map[string]any{"page": 0, "size": 10, "sort": "codigo,desc"}
	var size *int

	merged := query.Merge(defaults, map[string]any{
		"page": intPtr(3),
		"size": size,
		"sort": "",
		"tipo": domain.TipoMovel,
	})
	values := query.Build(merged)

	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "10", values.Get("size"))
	assert.Equal(t, "codigo,desc", values.Get("sort"))
	assert.Equal(t, "MOVEL", values.Get("tipo"))
	// defaults não são alterados
	assert.Equal(t, 0, defaults["page"])
}

func TestMerge_ZeroExplicitoSubstituiDefault(t *testing.T) {
	merged := query.Merge(map[string]any{"size": 10}, map[string]any{"size": intPtr(0)})

	assert.Equal(t, "0", query.Build(merged).Get("size"))
}
