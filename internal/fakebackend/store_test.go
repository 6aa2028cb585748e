package fakebackend

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
)

func novoProduto(t *testing.T, s *Store, descricao string, tipo domain.TipoProduto, valor string, estoque int) domain.Produto {
	t.Helper()
	p, err := s.CriarProduto(domain.ProdutoCreateRequest{
		Descricao:         descricao,
		TipoProduto:       tipo,
		ValorNoFornecedor: decimal.RequireFromString(valor),
		Estoque:           estoque,
	})
	require.NoError(t, err)
	return p
}

func saida(codigo int64, qtd int, valor string) domain.MovimentoEstoqueCreateRequest {
	v := decimal.RequireFromString(valor)
	d := domain.NovaDataHora(time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local))
	return domain.MovimentoEstoqueCreateRequest{
		CodigoProduto:    codigo,
		TipoMovimentacao: domain.MovimentacaoSaida,
		QtdMovimentada:   qtd,
		ValorVenda:       &v,
		DataVenda:        &d,
	}
}

func TestStore_CriarProduto_Validacao(t *testing.T) {
	s := NewStore()

	_, err := s.CriarProduto(domain.ProdutoCreateRequest{Descricao: " ", TipoProduto: domain.TipoMovel})
	assert.Equal(t, "VALIDATION_ERROR", apperror.Category(err))

	_, err = s.CriarProduto(domain.ProdutoCreateRequest{Descricao: "Sofá", TipoProduto: "BRINQUEDO"})
	assert.Equal(t, "VALIDATION_ERROR", apperror.Category(err))

	_, err = s.CriarProduto(domain.ProdutoCreateRequest{Descricao: "Sofá", TipoProduto: domain.TipoMovel, Estoque: -1})
	assert.Equal(t, "VALIDATION_ERROR", apperror.Category(err))

	p := novoProduto(t, s, "Sofá", domain.TipoMovel, "100", 1)
	assert.Equal(t, int64(1), p.Codigo)
}

func TestStore_Saida_AtualizaEstoqueELucro(t *testing.T) {
	s := NewStore()
	p := novoProduto(t, s, "Notebook", domain.TipoEletronico, "3000.00", 12)

	mov, err := s.CriarMovimento(saida(p.Codigo, 3, "4500.00"))
	require.NoError(t, err)
	assert.Equal(t, 9, mov.EstoqueAtual)
	require.NotNil(t, mov.ValorVenda)

	atual, err := s.BuscarProduto(p.Codigo)
	require.NoError(t, err)
	assert.Equal(t, 9, atual.Estoque)

	lucro, err := s.ConsultarLucro(p.Codigo)
	require.NoError(t, err)
	assert.Equal(t, 3, lucro.QuantidadeTotalSaida)
	assert.True(t, lucro.LucroTotal.Equal(decimal.RequireFromString("4500")), lucro.LucroTotal.String())
}

func TestStore_Saida_Rejeicoes(t *testing.T) {
	s := NewStore()
	p := novoProduto(t, s, "Geladeira", domain.TipoEletrodomestico, "1500", 2)

	_, err := s.CriarMovimento(saida(p.Codigo, 5, "2000"))
	assert.Equal(t, "VALIDATION_ERROR", apperror.Category(err), "estoque insuficiente")

	_, err = s.CriarMovimento(saida(99, 1, "10"))
	assert.True(t, apperror.IsNotFound(err))

	_, err = s.CriarMovimento(domain.MovimentoEstoqueCreateRequest{CodigoProduto: p.Codigo, TipoMovimentacao: domain.MovimentacaoEntrada})
	assert.Equal(t, "VALIDATION_ERROR", apperror.Category(err), "quantidade zero")
}

func TestStore_SaidaSemDadosDeVenda(t *testing.T) {
	s := NewStore()
	p := novoProduto(t, s, "Geladeira", domain.TipoEletrodomestico, "1500", 4)

	semVenda := domain.MovimentoEstoqueCreateRequest{
		CodigoProduto:    p.Codigo,
		TipoMovimentacao: domain.MovimentacaoSaida,
		QtdMovimentada:   1,
	}
	mov, err := s.CriarMovimento(semVenda)
	require.NoError(t, err)
	assert.Equal(t, 3, mov.EstoqueAtual)
	assert.Nil(t, mov.ValorVenda)
	assert.Nil(t, mov.DataVenda)

	lucro, err := s.ConsultarLucro(p.Codigo)
	require.NoError(t, err)
	assert.Equal(t, 1, lucro.QuantidadeTotalSaida)
	assert.True(t, lucro.LucroTotal.IsZero())

	s.ExigirDadosVenda = true
	_, err = s.CriarMovimento(semVenda)
	assert.Equal(t, "VALIDATION_ERROR", apperror.Category(err))
	assert.Equal(t, "Saídas exigem valor e data da venda.", apperror.Mensagem(err, ""))

	atual, err := s.BuscarProduto(p.Codigo)
	require.NoError(t, err)
	assert.Equal(t, 3, atual.Estoque)
}

func TestStore_PaginaAlemDoFim(t *testing.T) {
	s := NewStore()
	for _, d := range []string{"A", "B", "C"} {
		novoProduto(t, s, d, domain.TipoMovel, "10", 1)
	}

	page, err := s.ListarProdutos("", "", Pagina{Number: 5, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, 5, page.Number)
	assert.Equal(t, int64(3), page.TotalElements)
}

func TestStore_Exclusao(t *testing.T) {
	s := NewStore()
	semHistorico := novoProduto(t, s, "Mesa", domain.TipoMovel, "200", 1)
	comHistorico := novoProduto(t, s, "TV", domain.TipoEletronico, "1000", 5)
	_, err := s.CriarMovimento(saida(comHistorico.Codigo, 1, "1500"))
	require.NoError(t, err)

	require.NoError(t, s.ExcluirProduto(semHistorico.Codigo))
	assert.True(t, apperror.IsNotFound(s.ExcluirProduto(semHistorico.Codigo)))

	assert.True(t, apperror.IsConflict(s.ExcluirProduto(comHistorico.Codigo)))
	require.NoError(t, s.ExcluirForcado(comHistorico.Codigo))

	_, err = s.BuscarProduto(comHistorico.Codigo)
	assert.True(t, apperror.IsNotFound(err))
	page, err := s.ListarMovimentos(nil, "", Pagina{Size: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
}

func TestStore_ListarProdutos_FiltroOrdemPaginacao(t *testing.T) {
	s := NewStore()
	novoProduto(t, s, "Notebook Pro", domain.TipoEletronico, "10", 1)
	novoProduto(t, s, "Cadeira", domain.TipoMovel, "10", 1)
	novoProduto(t, s, "notebook Air", domain.TipoEletronico, "10", 1)

	page, err := s.ListarProdutos("", "NOTEBOOK", Pagina{Size: 10, Campo: "codigo", Desc: true})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(3), page.Content[0].Codigo)

	page, err = s.ListarProdutos(domain.TipoMovel, "", Pagina{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Cadeira", page.Content[0].Descricao)

	page, err = s.ListarProdutos("", "", Pagina{Number: 1, Size: 2, Campo: "codigo"})
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.True(t, page.Last)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.Consistent())

	_, err = s.ListarProdutos("", "", Pagina{Size: 10, Campo: "inexistente"})
	assert.Equal(t, "VALIDATION_ERROR", apperror.Category(err))
}

func TestStore_ListarResumos(t *testing.T) {
	s := NewStore()
	a := novoProduto(t, s, "A", domain.TipoEletronico, "1", 10)
	novoProduto(t, s, "B", domain.TipoMovel, "1", 4)
	_, err := s.CriarMovimento(saida(a.Codigo, 4, "2"))
	require.NoError(t, err)

	page, err := s.ListarResumos("", Pagina{Size: 10, Campo: "codigo"})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, 6, page.Content[0].EstoqueDisponivel)
	assert.Equal(t, 4, page.Content[0].QuantidadeTotalSaida)
	assert.Equal(t, 0, page.Content[1].QuantidadeTotalSaida)
}
