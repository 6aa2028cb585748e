package fakebackend

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
	"stockadmin/internal/pkg/logger"
)

// tamanhoPadrao é o size usado quando a requisição não informa um.
const tamanhoPadrao = 20

// Handler agrupa os handlers HTTP de produtos e movimentações.
type Handler struct {
	Store  *Store
	Logger logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Store e o Logger.
func NewHandler(store *Store, log logger.Logger) *Handler {
	return &Handler{Store: store, Logger: log}
}

// responder envia data como JSON em caso de sucesso, ou o corpo de erro
// padronizado do backend ({message, status, error, path, timestamp}).
func (h *Handler) responder(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		if data == nil {
			w.WriteHeader(successStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
			h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
		}
		return
	}

	status := http.StatusInternalServerError
	message := apperror.MensagemPadrao
	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus()
		message = mensagemDe(appErr)
	}

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", apperror.Category(err)), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, apperror.Category(err)), map[string]interface{}{"path": r.URL.Path})
	}

	escreverErro(w, r, status, message)
}

func escreverErro(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.BackendError{
		Message:   message,
		Status:    status,
		Error:     http.StatusText(status),
		Path:      r.URL.Path,
		Timestamp: time.Now().Format(domain.LayoutDataHora),
	})
}

// mensagemDe recupera o texto original do erro, sem o prefixo de categoria.
func mensagemDe(err apperror.AppError) string {
	switch e := err.(type) {
	case *apperror.ValidationError:
		return e.Msg
	case *apperror.NotFoundError:
		return e.Msg
	case *apperror.ConflictError:
		return e.Msg
	}
	return apperror.MensagemPadrao
}

// --- Produtos ---

// CriarProduto lida com POST /produtos.
func (h *Handler) CriarProduto(w http.ResponseWriter, r *http.Request) {
	var req domain.ProdutoCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}
	produto, err := h.Store.CriarProduto(req)
	h.responder(w, r, produto, err, http.StatusCreated)
}

// ListarProdutos lida com GET /produtos.
func (h *Handler) ListarProdutos(w http.ResponseWriter, r *http.Request) {
	pg, err := lerPagina(r)
	if err != nil {
		h.responder(w, r, nil, err, 0)
		return
	}
	q := r.URL.Query()
	page, err := h.Store.ListarProdutos(domain.TipoProduto(q.Get("tipo")), q.Get("descricao"), pg)
	h.responder(w, r, page, err, http.StatusOK)
}

// BuscarProduto lida com GET /produtos/{codigo}.
func (h *Handler) BuscarProduto(w http.ResponseWriter, r *http.Request) {
	codigo, err := lerCodigo(r, "codigo")
	if err != nil {
		h.responder(w, r, nil, err, 0)
		return
	}
	produto, err := h.Store.BuscarProduto(codigo)
	h.responder(w, r, produto, err, http.StatusOK)
}

// AtualizarProduto lida com PUT /produtos/{codigo}.
func (h *Handler) AtualizarProduto(w http.ResponseWriter, r *http.Request) {
	codigo, err := lerCodigo(r, "codigo")
	if err != nil {
		h.responder(w, r, nil, err, 0)
		return
	}
	var req domain.ProdutoUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}
	produto, err := h.Store.AtualizarProduto(codigo, req)
	h.responder(w, r, produto, err, http.StatusOK)
}

// ExcluirProduto lida com DELETE /produtos/{codigo}.
func (h *Handler) ExcluirProduto(w http.ResponseWriter, r *http.Request) {
	codigo, err := lerCodigo(r, "codigo")
	if err != nil {
		h.responder(w, r, nil, err, 0)
		return
	}
	h.responder(w, r, nil, h.Store.ExcluirProduto(codigo), http.StatusNoContent)
}

// ExcluirForcado lida com DELETE /produtos/{codigo}/forcar.
func (h *Handler) ExcluirForcado(w http.ResponseWriter, r *http.Request) {
	codigo, err := lerCodigo(r, "codigo")
	if err != nil {
		h.responder(w, r, nil, err, 0)
		return
	}
	h.responder(w, r, nil, h.Store.ExcluirForcado(codigo), http.StatusNoContent)
}

// ListarResumos lida com GET /produtos/resumo.
func (h *Handler) ListarResumos(w http.ResponseWriter, r *http.Request) {
	pg, err := lerPagina(r)
	if err != nil {
		h.responder(w, r, nil, err, 0)
		return
	}
	page, err := h.Store.ListarResumos(domain.TipoProduto(r.URL.Query().Get("tipo")), pg)
	h.responder(w, r, page, err, http.StatusOK)
}

// ConsultarLucro lida com GET /produtos/{codigo}/lucro.
func (h *Handler) ConsultarLucro(w http.ResponseWriter, r *http.Request) {
	codigo, err := lerCodigo(r, "codigo")
	if err != nil {
		h.responder(w, r, nil, err, 0)
		return
	}
	lucro, err := h.Store.ConsultarLucro(codigo)
	h.responder(w, r, lucro, err, http.StatusOK)
}

// --- Movimentações ---

// CriarMovimento lida com POST /movimentos.
func (h *Handler) CriarMovimento(w http.ResponseWriter, r *http.Request) {
	var req domain.MovimentoEstoqueCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}
	mov, err := h.Store.CriarMovimento(req)
	if err == nil {
		fields := map[string]interface{}{"codigo": mov.CodigoMovimentacao, "produto": mov.CodigoProduto, "tipo": mov.TipoMovimentacao}
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			fields["usuario"] = claims.Subject
		}
		h.Logger.Info("Movimentação registrada.", fields)
	}
	h.responder(w, r, mov, err, http.StatusCreated)
}

// ListarMovimentos lida com GET /movimentos.
func (h *Handler) ListarMovimentos(w http.ResponseWriter, r *http.Request) {
	pg, err := lerPagina(r)
	if err != nil {
		h.responder(w, r, nil, err, 0)
		return
	}
	q := r.URL.Query()

	var codigoProduto *int64
	if raw := q.Get("codigoProduto"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.responder(w, r, nil, apperror.NewValidationError("codigoProduto deve ser numérico."), 0)
			return
		}
		codigoProduto = &v
	}

	page, err := h.Store.ListarMovimentos(codigoProduto, domain.TipoMovimentacao(q.Get("tipoMovimentacao")), pg)
	h.responder(w, r, page, err, http.StatusOK)
}

// BuscarMovimento lida com GET /movimentos/{codigoMovimentacao}.
func (h *Handler) BuscarMovimento(w http.ResponseWriter, r *http.Request) {
	codigo, err := lerCodigo(r, "codigoMovimentacao")
	if err != nil {
		h.responder(w, r, nil, err, 0)
		return
	}
	mov, err := h.Store.BuscarMovimento(codigo)
	h.responder(w, r, mov, err, http.StatusOK)
}

// --- Auxiliares ---

func lerCodigo(r *http.Request, nome string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(nome), 10, 64)
	if err != nil {
		return 0, apperror.NewValidationError(fmt.Sprintf("%s deve ser numérico.", nome))
	}
	return v, nil
}

// lerPagina interpreta page, size e sort ("campo,asc|desc").
func lerPagina(r *http.Request) (Pagina, error) {
	q := r.URL.Query()
	pg := Pagina{Number: 0, Size: tamanhoPadrao}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Pagina{}, apperror.NewValidationError("page deve ser um inteiro não negativo.")
		}
		pg.Number = n
	}
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Pagina{}, apperror.NewValidationError("size deve ser um inteiro positivo.")
		}
		pg.Size = n
	}
	// page*size precisa caber em int para o recorte da página.
	if pg.Number > (math.MaxInt-pg.Size)/pg.Size {
		return Pagina{}, apperror.NewValidationError("page fora do intervalo permitido.")
	}
	if raw := q.Get("sort"); raw != "" {
		campo, dir, _ := strings.Cut(raw, ",")
		pg.Campo = strings.TrimSpace(campo)
		pg.Desc = strings.EqualFold(strings.TrimSpace(dir), "desc")
	}
	return pg, nil
}
