package domain

import (
	"github.com/shopspring/decimal"
)

// TipoMovimentacao indica se a movimentação é de entrada ou de saída (venda).
type TipoMovimentacao string

const (
	MovimentacaoEntrada TipoMovimentacao = "ENTRADA"
	MovimentacaoSaida   TipoMovimentacao = "SAIDA"
)

func (t TipoMovimentacao) String() string { return string(t) }

// MovimentoEstoque é um lançamento imutável do livro de movimentações.
// EstoqueAtual é o saldo calculado pelo servidor no momento do lançamento.
type MovimentoEstoque struct {
	CodigoMovimentacao int64            `json:"codigoMovimentacao"`
	CodigoProduto      int64            `json:"codigoProduto"`
	DescricaoProduto   *string          `json:"descricaoProduto,omitempty"`
	TipoMovimentacao   TipoMovimentacao `json:"tipoMovimentacao"`
	QtdMovimentada     int              `json:"qtdMovimentada"`
	ValorVenda         *decimal.Decimal `json:"valorVenda,omitempty"`
	DataVenda          *DataHora        `json:"dataVenda,omitempty"`
	DataMovimento      DataHora         `json:"dataMovimento"`
	EstoqueAtual       int              `json:"estoqueAtual"`
}

// MovimentoEstoqueCreateRequest é o payload de criação de movimentação.
// ValorVenda e DataVenda são opcionais também em saídas; exigi-los cabe ao backend.
type MovimentoEstoqueCreateRequest struct {
	CodigoProduto    int64            `json:"codigoProduto"`
	TipoMovimentacao TipoMovimentacao `json:"tipoMovimentacao"`
	QtdMovimentada   int              `json:"qtdMovimentada"`
	ValorVenda       *decimal.Decimal `json:"valorVenda,omitempty"`
	DataVenda        *DataHora        `json:"dataVenda,omitempty"`
}

// ListarMovimentosParams define os filtros e a paginação da listagem de movimentos.
type ListarMovimentosParams struct {
	Page             *int
	Size             *int
	Sort             string
	CodigoProduto    *int64
	TipoMovimentacao TipoMovimentacao
}
