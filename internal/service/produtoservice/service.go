// Package produtoservice é o cliente tipado do recurso /produtos.
package produtoservice

import (
	"context"
	"fmt"
	"net/url"

	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
	"stockadmin/internal/pkg/logger"
	"stockadmin/internal/pkg/query"
)

const basePath = "/produtos"

// Transport define o contrato que este Serviço espera da camada HTTP.
// httpclient.Client é a implementação de produção.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Defaults são os parâmetros de paginação aplicados quando o chamador não informa.
type Defaults struct {
	Page int
	Size int
	Sort string
}

// DefaultListagem é a paginação padrão das listagens de produtos.
var DefaultListagem = Defaults{Page: 0, Size: 10, Sort: "codigo,desc"}

// Service é o cliente de produtos. Não mantém estado entre chamadas.
type Service struct {
	transport Transport
	logger    logger.Logger
	defaults  Defaults
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(transport Transport, logger logger.Logger) *Service {
	return NewServiceWithDefaults(transport, logger, DefaultListagem)
}

// NewServiceWithDefaults permite sobrescrever a paginação padrão.
func NewServiceWithDefaults(transport Transport, logger logger.Logger, defaults Defaults) *Service {
	return &Service{transport: transport, logger: logger, defaults: defaults}
}

// Criar cadastra um novo produto. O payload é validado pelo backend.
func (s *Service) Criar(ctx context.Context, req domain.ProdutoCreateRequest) (domain.Produto, error) {
	s.logger.Debug("Criando produto.", map[string]interface{}{
		"descricao":    req.Descricao,
		"tipo_produto": req.TipoProduto,
	})

	var produto domain.Produto
	if err := s.transport.Post(ctx, basePath, req, &produto); err != nil {
		return domain.Produto{}, err
	}

	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{"codigo": produto.Codigo})
	return produto, nil
}

// Listar devolve uma página de produtos filtrada por tipo e descrição.
// params pode ser nil: a paginação padrão é aplicada.
func (s *Service) Listar(ctx context.Context, params *domain.ListarProdutosParams) (domain.Page[domain.Produto], error) {
	q := s.listQuery(params, true)

	var page domain.Page[domain.Produto]
	if err := s.transport.Get(ctx, basePath, q, &page); err != nil {
		return domain.Page[domain.Produto]{}, err
	}
	return page, nil
}

// BuscarPorID devolve o produto de código informado ou NotFoundError.
func (s *Service) BuscarPorID(ctx context.Context, codigo int64) (domain.Produto, error) {
	var produto domain.Produto
	if err := s.transport.Get(ctx, produtoPath(codigo), nil, &produto); err != nil {
		return domain.Produto{}, err
	}
	return produto, nil
}

// Atualizar substitui descrição, tipo, custo e estoque do produto.
func (s *Service) Atualizar(ctx context.Context, codigo int64, req domain.ProdutoUpdateRequest) (domain.Produto, error) {
	s.logger.Debug("Atualizando produto.", map[string]interface{}{"codigo": codigo})

	var produto domain.Produto
	if err := s.transport.Put(ctx, produtoPath(codigo), req, &produto); err != nil {
		return domain.Produto{}, err
	}
	return produto, nil
}

// Excluir remove o produto. Produtos com movimentações são recusados pelo
// backend com ConflictError; ExcluirForcado é a alternativa explícita.
func (s *Service) Excluir(ctx context.Context, codigo int64) error {
	if err := s.transport.Delete(ctx, produtoPath(codigo)); err != nil {
		if apperror.IsConflict(err) {
			s.logger.Warn("Exclusão recusada: produto possui movimentações.", map[string]interface{}{"codigo": codigo})
		}
		return err
	}
	s.logger.Info("Produto excluído.", map[string]interface{}{"codigo": codigo})
	return nil
}

// ExcluirForcado remove o produto mesmo que possua movimentações.
// O efeito sobre o histórico é definido pelo backend.
func (s *Service) ExcluirForcado(ctx context.Context, codigo int64) error {
	if err := s.transport.Delete(ctx, produtoPath(codigo)+"/forcar"); err != nil {
		return err
	}
	s.logger.Warn("Produto excluído de forma forçada.", map[string]interface{}{"codigo": codigo})
	return nil
}

// ListarResumo devolve uma página da visão agregada de estoque e saídas.
// O filtro por descrição não se aplica ao resumo e não é enviado.
func (s *Service) ListarResumo(ctx context.Context, params *domain.ListarProdutosParams) (domain.Page[domain.ProdutoResumo], error) {
	q := s.listQuery(params, false)

	var page domain.Page[domain.ProdutoResumo]
	if err := s.transport.Get(ctx, basePath+"/resumo", q, &page); err != nil {
		return domain.Page[domain.ProdutoResumo]{}, err
	}
	return page, nil
}

// ConsultarLucro devolve o lucro total calculado pelo backend para o produto.
func (s *Service) ConsultarLucro(ctx context.Context, codigo int64) (domain.LucroProduto, error) {
	var lucro domain.LucroProduto
	if err := s.transport.Get(ctx, produtoPath(codigo)+"/lucro", nil, &lucro); err != nil {
		return domain.LucroProduto{}, err
	}
	return lucro, nil
}

// ListarTodosResumos percorre as páginas do resumo a partir da página pedida
// até a última, em sequência. Para no primeiro erro.
func (s *Service) ListarTodosResumos(ctx context.Context, params *domain.ListarProdutosParams) ([]domain.ProdutoResumo, error) {
	var p domain.ListarProdutosParams
	if params != nil {
		p = *params
	}
	page := s.defaults.Page
	if p.Page != nil {
		page = *p.Page
	}

	var todos []domain.ProdutoResumo
	for {
		atual := page
		p.Page = &atual

		resp, err := s.ListarResumo(ctx, &p)
		if err != nil {
			return nil, fmt.Errorf("resumo de produtos, página %d: %w", atual, err)
		}
		todos = append(todos, resp.Content...)

		// totalPages protege contra um backend que nunca marca last.
		if resp.Last || len(resp.Content) == 0 || atual+1 >= resp.TotalPages {
			break
		}
		page++
	}

	s.logger.Debug("Resumo completo carregado.", map[string]interface{}{"total": len(todos)})
	return todos, nil
}

func (s *Service) listQuery(params *domain.ListarProdutosParams, comDescricao bool) url.Values {
	defaults := map[string]any{
		"page": s.defaults.Page,
		"size": s.defaults.Size,
		"sort": s.defaults.Sort,
	}
	if params == nil {
		return query.Build(defaults)
	}

	raw := map[string]any{
		"page": params.Page,
		"size": params.Size,
		"sort": params.Sort,
		"tipo": params.Tipo,
	}
	if comDescricao {
		raw["descricao"] = params.Descricao
	}
	return query.Build(query.Merge(defaults, raw))
}

func produtoPath(codigo int64) string {
	return fmt.Sprintf("%s/%d", basePath, codigo)
}
