// Package movimentoservice é o cliente tipado do recurso /movimentos.
package movimentoservice

import (
	"context"
	"fmt"
	"net/url"

	"stockadmin/internal/domain"
	"stockadmin/internal/pkg/logger"
	"stockadmin/internal/pkg/query"
)

const basePath = "/movimentos"

// Transport define o contrato que este Serviço espera da camada HTTP.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// Defaults são os parâmetros de paginação aplicados quando o chamador não informa.
type Defaults struct {
	Page int
	Size int
	Sort string
}

// DefaultListagem é a paginação padrão das listagens de movimentações.
var DefaultListagem = Defaults{Page: 0, Size: 10, Sort: "codigoMovimentacao,desc"}

// Service é o cliente de movimentações de estoque.
type Service struct {
	transport Transport
	logger    logger.Logger
	defaults  Defaults
}

// NewService cria e retorna uma nova instância do Serviço de Movimentação.
func NewService(transport Transport, logger logger.Logger) *Service {
	return &Service{transport: transport, logger: logger, defaults: DefaultListagem}
}

// Criar registra uma entrada ou saída. O saldo resultante vem em EstoqueAtual.
// Regras de venda (valor e data obrigatórios na saída) são do backend.
func (s *Service) Criar(ctx context.Context, req domain.MovimentoEstoqueCreateRequest) (domain.MovimentoEstoque, error) {
	s.logger.Debug("Registrando movimentação de estoque.", map[string]interface{}{
		"codigo_produto": req.CodigoProduto,
		"tipo":           req.TipoMovimentacao,
		"quantidade":     req.QtdMovimentada,
	})

	var mov domain.MovimentoEstoque
	if err := s.transport.Post(ctx, basePath, req, &mov); err != nil {
		return domain.MovimentoEstoque{}, err
	}

	s.logger.Info("Movimentação registrada.", map[string]interface{}{
		"codigo_movimentacao": mov.CodigoMovimentacao,
		"estoque_atual":       mov.EstoqueAtual,
	})
	return mov, nil
}

// Listar devolve uma página de movimentações filtrada por produto e tipo.
func (s *Service) Listar(ctx context.Context, params *domain.ListarMovimentosParams) (domain.Page[domain.MovimentoEstoque], error) {
	defaults := map[string]any{
		"page": s.defaults.Page,
		"size": s.defaults.Size,
		"sort": s.defaults.Sort,
	}
	raw := map[string]any{}
	if params != nil {
		raw = map[string]any{
			"page":             params.Page,
			"size":             params.Size,
			"sort":             params.Sort,
			"codigoProduto":    params.CodigoProduto,
			"tipoMovimentacao": params.TipoMovimentacao,
		}
	}

	var page domain.Page[domain.MovimentoEstoque]
	if err := s.transport.Get(ctx, basePath, query.Build(query.Merge(defaults, raw)), &page); err != nil {
		return domain.Page[domain.MovimentoEstoque]{}, err
	}
	return page, nil
}

// BuscarPorID devolve a movimentação ou NotFoundError.
func (s *Service) BuscarPorID(ctx context.Context, codigoMovimentacao int64) (domain.MovimentoEstoque, error) {
	var mov domain.MovimentoEstoque
	if err := s.transport.Get(ctx, fmt.Sprintf("%s/%d", basePath, codigoMovimentacao), nil, &mov); err != nil {
		return domain.MovimentoEstoque{}, err
	}
	return mov, nil
}
