// Package report monta o relatório de estoque e lucro por produto e o exporta
// em XLSX, PDF e CSV.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
)

// Fonte é o subconjunto do cliente de produtos usado pelo relatório.
// produtoservice.Service a implementa.
type Fonte interface {
	ListarTodosResumos(ctx context.Context, params *domain.ListarProdutosParams) ([]domain.ProdutoResumo, error)
	ConsultarLucro(ctx context.Context, codigo int64) (domain.LucroProduto, error)
}

// Filtro restringe os produtos incluídos. Tipo vazio inclui todos.
type Filtro struct {
	Tipo domain.TipoProduto
}

// Linha é um produto do relatório com seu lucro acumulado.
type Linha struct {
	domain.ProdutoResumo
	LucroTotal decimal.Decimal
}

// Relatorio reúne as linhas e os totais gerais.
type Relatorio struct {
	GeradoEm     time.Time
	Filtro       Filtro
	Linhas       []Linha
	TotalEstoque int
	TotalSaidas  int
	LucroTotal   decimal.Decimal
}

// Gerar busca todos os resumos (todas as páginas) e o lucro de cada produto.
// Produtos cujo lucro não é encontrado entram com lucro zero; qualquer outro
// erro interrompe a geração.
func Gerar(ctx context.Context, fonte Fonte, filtro Filtro) (Relatorio, error) {
	resumos, err := fonte.ListarTodosResumos(ctx, &domain.ListarProdutosParams{
		Sort: "codigo,asc",
		Tipo: filtro.Tipo,
	})
	if err != nil {
		return Relatorio{}, err
	}

	rel := Relatorio{
		GeradoEm:   time.Now(),
		Filtro:     filtro,
		Linhas:     make([]Linha, 0, len(resumos)),
		LucroTotal: decimal.Zero,
	}

	for _, r := range resumos {
		linha := Linha{ProdutoResumo: r, LucroTotal: decimal.Zero}

		lucro, err := fonte.ConsultarLucro(ctx, r.Codigo)
		switch {
		case err == nil:
			linha.LucroTotal = lucro.LucroTotal
		case apperror.IsNotFound(err):
		default:
			return Relatorio{}, fmt.Errorf("lucro do produto %d: %w", r.Codigo, err)
		}

		rel.Linhas = append(rel.Linhas, linha)
		rel.TotalEstoque += r.EstoqueDisponivel
		rel.TotalSaidas += r.QuantidadeTotalSaida
		rel.LucroTotal = rel.LucroTotal.Add(linha.LucroTotal)
	}

	return rel, nil
}

// titulo descreve o filtro aplicado.
func (r Relatorio) titulo() string {
	if r.Filtro.Tipo == "" {
		return "Relatório de estoque e lucro"
	}
	return fmt.Sprintf("Relatório de estoque e lucro (%s)", r.Filtro.Tipo)
}

var cabecalho = []string{"Código", "Descrição", "Tipo", "Custo", "Estoque", "Saídas", "Lucro"}
