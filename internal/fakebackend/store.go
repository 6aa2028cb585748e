// Package fakebackend implementa em memória a API de estoque consumida pelos
// clientes de recurso. É usado nos testes e pelo servidor de desenvolvimento
// (cmd/fakeapi).
package fakebackend

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
)

// Pagina é a requisição de paginação já interpretada pelo handler.
type Pagina struct {
	Number int
	Size   int
	Campo  string
	Desc   bool
}

// Store guarda produtos e movimentações e aplica as regras de negócio do backend.
type Store struct {
	// ExigirDadosVenda recusa saídas sem valorVenda e dataVenda. Desligado por
	// padrão: o backend aceita saídas sem dados de venda.
	ExigirDadosVenda bool

	mu            sync.RWMutex
	produtos      map[int64]domain.Produto
	movimentos    []domain.MovimentoEstoque
	proxProduto   int64
	proxMovimento int64
	now           func() time.Time
}

// NewStore cria um store vazio.
func NewStore() *Store {
	return &Store{
		produtos:      make(map[int64]domain.Produto),
		proxProduto:   1,
		proxMovimento: 1,
		now:           time.Now,
	}
}

func validarProduto(descricao string, tipo domain.TipoProduto, valor decimal.Decimal, estoque int) error {
	switch {
	case strings.TrimSpace(descricao) == "":
		return apperror.NewValidationError("Descrição é obrigatória.")
	case !tipo.Conhecido():
		return apperror.NewValidationError(fmt.Sprintf("Tipo de produto inválido: %q.", tipo))
	case valor.IsNegative():
		return apperror.NewValidationError("Valor no fornecedor não pode ser negativo.")
	case estoque < 0:
		return apperror.NewValidationError("Estoque não pode ser negativo.")
	}
	return nil
}

// CriarProduto valida e cadastra um produto, atribuindo o código.
func (s *Store) CriarProduto(req domain.ProdutoCreateRequest) (domain.Produto, error) {
	if err := validarProduto(req.Descricao, req.TipoProduto, req.ValorNoFornecedor, req.Estoque); err != nil {
		return domain.Produto{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Produto{
		Codigo:            s.proxProduto,
		Descricao:         strings.TrimSpace(req.Descricao),
		TipoProduto:       req.TipoProduto,
		ValorNoFornecedor: req.ValorNoFornecedor,
		Estoque:           req.Estoque,
	}
	s.produtos[p.Codigo] = p
	s.proxProduto++
	return p, nil
}

// BuscarProduto devolve o produto ou NotFoundError.
func (s *Store) BuscarProduto(codigo int64) (domain.Produto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.produto(codigo)
}

func (s *Store) produto(codigo int64) (domain.Produto, error) {
	p, ok := s.produtos[codigo]
	if !ok {
		return domain.Produto{}, apperror.NewNotFoundError(fmt.Sprintf("Produto %d não encontrado.", codigo))
	}
	return p, nil
}

// AtualizarProduto substitui os campos editáveis do produto.
func (s *Store) AtualizarProduto(codigo int64, req domain.ProdutoUpdateRequest) (domain.Produto, error) {
	if err := validarProduto(req.Descricao, req.TipoProduto, req.ValorNoFornecedor, req.Estoque); err != nil {
		return domain.Produto{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.produto(codigo)
	if err != nil {
		return domain.Produto{}, err
	}
	p.Descricao = strings.TrimSpace(req.Descricao)
	p.TipoProduto = req.TipoProduto
	p.ValorNoFornecedor = req.ValorNoFornecedor
	p.Estoque = req.Estoque
	s.produtos[codigo] = p
	return p, nil
}

// ExcluirProduto recusa com ConflictError produtos que possuem movimentações.
func (s *Store) ExcluirProduto(codigo int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.produto(codigo); err != nil {
		return err
	}
	for _, m := range s.movimentos {
		if m.CodigoProduto == codigo {
			return apperror.NewConflictError("Produto possui movimentações e não pode ser excluído.")
		}
	}
	delete(s.produtos, codigo)
	return nil
}

// ExcluirForcado remove o produto e todo o seu histórico de movimentações.
func (s *Store) ExcluirForcado(codigo int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.produto(codigo); err != nil {
		return err
	}
	restantes := s.movimentos[:0]
	for _, m := range s.movimentos {
		if m.CodigoProduto != codigo {
			restantes = append(restantes, m)
		}
	}
	s.movimentos = restantes
	delete(s.produtos, codigo)
	return nil
}

// ListarProdutos filtra por tipo e por trecho da descrição (sem diferenciar maiúsculas).
func (s *Store) ListarProdutos(tipo domain.TipoProduto, descricao string, pg Pagina) (domain.Page[domain.Produto], error) {
	less, err := ordemProduto(pg.Campo)
	if err != nil {
		return domain.Page[domain.Produto]{}, err
	}

	s.mu.RLock()
	filtrados := make([]domain.Produto, 0, len(s.produtos))
	termo := strings.ToLower(strings.TrimSpace(descricao))
	for _, p := range s.produtos {
		if tipo != "" && p.TipoProduto != tipo {
			continue
		}
		if termo != "" && !strings.Contains(strings.ToLower(p.Descricao), termo) {
			continue
		}
		filtrados = append(filtrados, p)
	}
	s.mu.RUnlock()

	return paginar(porCodigo(filtrados), less, pg), nil
}

// ListarResumos devolve a visão agregada por produto.
func (s *Store) ListarResumos(tipo domain.TipoProduto, pg Pagina) (domain.Page[domain.ProdutoResumo], error) {
	less, err := ordemProduto(pg.Campo)
	if err != nil {
		return domain.Page[domain.ProdutoResumo]{}, err
	}

	s.mu.RLock()
	saidas := s.saidasPorProduto()
	produtos := make([]domain.Produto, 0, len(s.produtos))
	for _, p := range s.produtos {
		if tipo == "" || p.TipoProduto == tipo {
			produtos = append(produtos, p)
		}
	}
	s.mu.RUnlock()

	page := paginar(porCodigo(produtos), less, pg)
	resumos := make([]domain.ProdutoResumo, 0, len(page.Content))
	for _, p := range page.Content {
		resumos = append(resumos, domain.ProdutoResumo{
			Codigo:               p.Codigo,
			Descricao:            p.Descricao,
			TipoProduto:          p.TipoProduto,
			ValorNoFornecedor:    p.ValorNoFornecedor,
			EstoqueDisponivel:    p.Estoque,
			QuantidadeTotalSaida: saidas[p.Codigo],
		})
	}
	return domain.NewPage(resumos, page.Number, page.Size, page.TotalElements, page.Sort.Sorted), nil
}

// ConsultarLucro soma (valorVenda - valorNoFornecedor) * quantidade das saídas.
// valorVenda é o preço unitário da venda.
func (s *Store) ConsultarLucro(codigo int64) (domain.LucroProduto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.produto(codigo)
	if err != nil {
		return domain.LucroProduto{}, err
	}

	lucro := decimal.Zero
	qtd := 0
	for _, m := range s.movimentos {
		if m.CodigoProduto != codigo || m.TipoMovimentacao != domain.MovimentacaoSaida {
			continue
		}
		qtd += m.QtdMovimentada
		if m.ValorVenda != nil {
			margem := m.ValorVenda.Sub(p.ValorNoFornecedor)
			lucro = lucro.Add(margem.Mul(decimal.NewFromInt(int64(m.QtdMovimentada))))
		}
	}

	return domain.LucroProduto{
		CodigoProduto:        p.Codigo,
		Descricao:            p.Descricao,
		TipoProduto:          p.TipoProduto,
		QuantidadeTotalSaida: qtd,
		LucroTotal:           lucro,
	}, nil
}

// CriarMovimento registra uma entrada ou saída e atualiza o estoque do produto.
func (s *Store) CriarMovimento(req domain.MovimentoEstoqueCreateRequest) (domain.MovimentoEstoque, error) {
	if req.QtdMovimentada <= 0 {
		return domain.MovimentoEstoque{}, apperror.NewValidationError("Quantidade movimentada deve ser maior que zero.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.produto(req.CodigoProduto)
	if err != nil {
		return domain.MovimentoEstoque{}, err
	}

	switch req.TipoMovimentacao {
	case domain.MovimentacaoEntrada:
		p.Estoque += req.QtdMovimentada
	case domain.MovimentacaoSaida:
		if s.ExigirDadosVenda && (req.ValorVenda == nil || req.DataVenda == nil) {
			return domain.MovimentoEstoque{}, apperror.NewValidationError("Saídas exigem valor e data da venda.")
		}
		if req.QtdMovimentada > p.Estoque {
			return domain.MovimentoEstoque{}, apperror.NewValidationError(
				fmt.Sprintf("Estoque insuficiente: disponível %d, solicitado %d.", p.Estoque, req.QtdMovimentada))
		}
		p.Estoque -= req.QtdMovimentada
	default:
		return domain.MovimentoEstoque{}, apperror.NewValidationError(fmt.Sprintf("Tipo de movimentação inválido: %q.", req.TipoMovimentacao))
	}

	descricao := p.Descricao
	m := domain.MovimentoEstoque{
		CodigoMovimentacao: s.proxMovimento,
		CodigoProduto:      p.Codigo,
		DescricaoProduto:   &descricao,
		TipoMovimentacao:   req.TipoMovimentacao,
		QtdMovimentada:     req.QtdMovimentada,
		DataMovimento:      domain.NovaDataHora(s.now()),
		EstoqueAtual:       p.Estoque,
	}
	if req.TipoMovimentacao == domain.MovimentacaoSaida {
		m.ValorVenda = req.ValorVenda
		m.DataVenda = req.DataVenda
	}

	s.produtos[p.Codigo] = p
	s.movimentos = append(s.movimentos, m)
	s.proxMovimento++
	return m, nil
}

// BuscarMovimento devolve a movimentação ou NotFoundError.
func (s *Store) BuscarMovimento(codigo int64) (domain.MovimentoEstoque, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.movimentos {
		if m.CodigoMovimentacao == codigo {
			return m, nil
		}
	}
	return domain.MovimentoEstoque{}, apperror.NewNotFoundError(fmt.Sprintf("Movimentação %d não encontrada.", codigo))
}

// ListarMovimentos filtra por produto e tipo.
func (s *Store) ListarMovimentos(codigoProduto *int64, tipo domain.TipoMovimentacao, pg Pagina) (domain.Page[domain.MovimentoEstoque], error) {
	less, err := ordemMovimento(pg.Campo)
	if err != nil {
		return domain.Page[domain.MovimentoEstoque]{}, err
	}

	s.mu.RLock()
	filtrados := make([]domain.MovimentoEstoque, 0, len(s.movimentos))
	for _, m := range s.movimentos {
		if codigoProduto != nil && m.CodigoProduto != *codigoProduto {
			continue
		}
		if tipo != "" && m.TipoMovimentacao != tipo {
			continue
		}
		filtrados = append(filtrados, m)
	}
	s.mu.RUnlock()

	return paginar(filtrados, less, pg), nil
}

// saidasPorProduto deve ser chamado com o lock de leitura.
func (s *Store) saidasPorProduto() map[int64]int {
	total := make(map[int64]int)
	for _, m := range s.movimentos {
		if m.TipoMovimentacao == domain.MovimentacaoSaida {
			total[m.CodigoProduto] += m.QtdMovimentada
		}
	}
	return total
}

func ordemProduto(campo string) (func(a, b domain.Produto) bool, error) {
	switch campo {
	case "", "codigo":
		return func(a, b domain.Produto) bool { return a.Codigo < b.Codigo }, nil
	case "descricao":
		return func(a, b domain.Produto) bool { return a.Descricao < b.Descricao }, nil
	case "tipoProduto":
		return func(a, b domain.Produto) bool { return a.TipoProduto < b.TipoProduto }, nil
	case "valorNoFornecedor":
		return func(a, b domain.Produto) bool { return a.ValorNoFornecedor.LessThan(b.ValorNoFornecedor) }, nil
	case "estoque":
		return func(a, b domain.Produto) bool { return a.Estoque < b.Estoque }, nil
	}
	return nil, apperror.NewValidationError(fmt.Sprintf("Campo de ordenação inválido: %q.", campo))
}

func ordemMovimento(campo string) (func(a, b domain.MovimentoEstoque) bool, error) {
	switch campo {
	case "", "codigoMovimentacao":
		return func(a, b domain.MovimentoEstoque) bool { return a.CodigoMovimentacao < b.CodigoMovimentacao }, nil
	case "codigoProduto":
		return func(a, b domain.MovimentoEstoque) bool { return a.CodigoProduto < b.CodigoProduto }, nil
	case "dataMovimento":
		return func(a, b domain.MovimentoEstoque) bool { return a.DataMovimento.Before(b.DataMovimento.Time) }, nil
	case "qtdMovimentada":
		return func(a, b domain.MovimentoEstoque) bool { return a.QtdMovimentada < b.QtdMovimentada }, nil
	}
	return nil, apperror.NewValidationError(fmt.Sprintf("Campo de ordenação inválido: %q.", campo))
}

// porCodigo fixa a ordem de base, já que a iteração do mapa é aleatória.
func porCodigo(produtos []domain.Produto) []domain.Produto {
	sort.Slice(produtos, func(i, j int) bool { return produtos[i].Codigo < produtos[j].Codigo })
	return produtos
}

// paginar ordena itens e recorta a página pedida. O desempate é estável.
func paginar[T any](itens []T, less func(a, b T) bool, pg Pagina) domain.Page[T] {
	sort.SliceStable(itens, func(i, j int) bool {
		if pg.Desc {
			return less(itens[j], itens[i])
		}
		return less(itens[i], itens[j])
	})

	total := int64(len(itens))
	inicio, fim := total, total
	if int64(pg.Number) < (total+int64(pg.Size)-1)/int64(pg.Size) {
		inicio = int64(pg.Number) * int64(pg.Size)
		fim = min(inicio+int64(pg.Size), total)
	}
	conteudo := append([]T(nil), itens[inicio:fim]...)
	return domain.NewPage(conteudo, pg.Number, pg.Size, total, pg.Campo != "")
}
