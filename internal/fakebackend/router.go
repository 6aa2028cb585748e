package fakebackend

import (
	"net/http"

	"stockadmin/internal/pkg/logger"
)

// Options configura o roteador. Validator nil desliga a autenticação.
type Options struct {
	Validator TokenValidator
	Logger    logger.Logger
	// ExigirDadosVenda liga a recusa de saídas sem valor e data da venda.
	ExigirDadosVenda bool
}

// NewRouter configura e retorna o roteador HTTP com as rotas da API de estoque.
func NewRouter(h *Handler, opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /produtos", h.CriarProduto)
	mux.HandleFunc("GET /produtos", h.ListarProdutos)
	mux.HandleFunc("GET /produtos/resumo", h.ListarResumos)
	mux.HandleFunc("GET /produtos/{codigo}", h.BuscarProduto)
	mux.HandleFunc("PUT /produtos/{codigo}", h.AtualizarProduto)
	mux.HandleFunc("DELETE /produtos/{codigo}", h.ExcluirProduto)
	mux.HandleFunc("DELETE /produtos/{codigo}/forcar", h.ExcluirForcado)
	mux.HandleFunc("GET /produtos/{codigo}/lucro", h.ConsultarLucro)

	mux.HandleFunc("POST /movimentos", h.CriarMovimento)
	mux.HandleFunc("GET /movimentos", h.ListarMovimentos)
	mux.HandleFunc("GET /movimentos/{codigoMovimentacao}", h.BuscarMovimento)

	var handler http.Handler = mux
	if opts.Validator != nil {
		handler = NewAuthMiddleware(opts.Validator)(handler)
	}

	root := http.NewServeMux()
	root.HandleFunc("GET /ping", PingHandler)
	root.Handle("/", handler)

	log := opts.Logger
	if log == nil {
		log = h.Logger
	}
	return LoggingMiddleware(log)(root)
}

// PingHandler é o health check; não exige autenticação.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// New monta store, handler e roteador em um único passo.
func New(log logger.Logger, opts Options) (*Store, http.Handler) {
	if log == nil {
		log = logger.NewNop()
	}
	store := NewStore()
	store.ExigirDadosVenda = opts.ExigirDadosVenda
	return store, NewRouter(NewHandler(store, log), opts)
}
