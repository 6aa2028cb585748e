package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Valores monetários trafegam como números JSON, não strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// TipoProduto é a categoria do produto, serializada pela sua tag textual.
// A enumeração pertence ao backend: tags desconhecidas são preservadas.
type TipoProduto string

const (
	TipoEletronico      TipoProduto = "ELETRONICO"
	TipoEletrodomestico TipoProduto = "ELETRODOMESTICO"
	TipoMovel           TipoProduto = "MOVEL"
)

func (t TipoProduto) String() string { return string(t) }

// Conhecido indica se a tag pertence às categorias conhecidas pelo cliente.
func (t TipoProduto) Conhecido() bool {
	switch t {
	case TipoEletronico, TipoEletrodomestico, TipoMovel:
		return true
	}
	return false
}

// Produto representa o item do catálogo como devolvido pelo backend (ProdutoResponse).
// O estoque nunca é negativo; a regra é garantida pelo servidor.
type Produto struct {
	Codigo            int64           `json:"codigo"`
	Descricao         string          `json:"descricao"`
	TipoProduto       TipoProduto     `json:"tipoProduto"`
	ValorNoFornecedor decimal.Decimal `json:"valorNoFornecedor"`
	Estoque           int             `json:"estoque"`
}

// ProdutoCreateRequest é o payload de criação de produto.
type ProdutoCreateRequest struct {
	Descricao         string          `json:"descricao"`
	TipoProduto       TipoProduto     `json:"tipoProduto"`
	ValorNoFornecedor decimal.Decimal `json:"valorNoFornecedor"`
	Estoque           int             `json:"estoque"`
}

// ProdutoUpdateRequest substitui integralmente descrição, tipo, custo e estoque.
type ProdutoUpdateRequest struct {
	Descricao         string          `json:"descricao"`
	TipoProduto       TipoProduto     `json:"tipoProduto"`
	ValorNoFornecedor decimal.Decimal `json:"valorNoFornecedor"`
	Estoque           int             `json:"estoque"`
}

// ProdutoResumo é a visão agregada (somente leitura) de estoque disponível e saídas.
type ProdutoResumo struct {
	Codigo               int64           `json:"codigo"`
	Descricao            string          `json:"descricao"`
	TipoProduto          TipoProduto     `json:"tipoProduto"`
	ValorNoFornecedor    decimal.Decimal `json:"valorNoFornecedor"`
	EstoqueDisponivel    int             `json:"estoqueDisponivel"`
	QuantidadeTotalSaida int             `json:"quantidadeTotalSaida"`
}

// LucroProduto é o resumo de lucro calculado pelo backend para um produto.
type LucroProduto struct {
	CodigoProduto        int64           `json:"codigoProduto"`
	Descricao            string          `json:"descricao"`
	TipoProduto          TipoProduto     `json:"tipoProduto"`
	QuantidadeTotalSaida int             `json:"quantidadeTotalSaida"`
	LucroTotal           decimal.Decimal `json:"lucroTotal"`
}

// ListarProdutosParams define os filtros e a paginação da listagem de produtos.
// Campos nil ou vazios não são enviados ao backend.
type ListarProdutosParams struct {
	Page      *int
	Size      *int
	Sort      string
	Tipo      TipoProduto
	Descricao string
}
