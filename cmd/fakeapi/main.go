// Comando fakeapi: servidor de desenvolvimento com a API de estoque em memória.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"stockadmin/config"
	"stockadmin/internal/domain"
	"stockadmin/internal/fakebackend"
	"stockadmin/internal/pkg/logger"
	"stockadmin/internal/pkg/token"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("Aviso: erro ao ler .env, usando apenas o ambiente.", err)
	}

	seed := flag.Bool("seed", false, "popula o store com produtos de exemplo")
	exigirVenda := flag.Bool("exigir-venda", false, "recusa saídas sem valor e data da venda")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	appLog := logger.NewLogger(cfg.LogLevel, cfg.Environment)

	// Com segredo configurado, a API exige o mesmo Bearer que o CLI envia.
	opts := fakebackend.Options{Logger: appLog, ExigirDadosVenda: *exigirVenda}
	if cfg.JWTSecret != "" {
		opts.Validator = token.NewService(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTSubject, cfg.JWTRole)
	}

	store, api := fakebackend.New(appLog, opts)
	if *seed {
		if err := popular(store); err != nil {
			appLog.Fatal("Falha ao popular o store.", err)
		}
		appLog.Info("Store populado com dados de exemplo.", nil)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/", api)

	server := &http.Server{
		Addr:         cfg.FakeAPIAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("API de desenvolvimento ouvindo.", map[string]interface{}{"addr": cfg.FakeAPIAddr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}
	appLog.Info("Servidor encerrado.", nil)
}

// popular cadastra alguns produtos e uma venda para explorar o CLI.
func popular(store *fakebackend.Store) error {
	produtos := []domain.ProdutoCreateRequest{
		{Descricao: "Notebook 14\"", TipoProduto: domain.TipoEletronico, ValorNoFornecedor: decimal.RequireFromString("3200.00"), Estoque: 12},
		{Descricao: "Geladeira Frost Free", TipoProduto: domain.TipoEletrodomestico, ValorNoFornecedor: decimal.RequireFromString("2100.00"), Estoque: 4},
		{Descricao: "Cadeira de escritório", TipoProduto: domain.TipoMovel, ValorNoFornecedor: decimal.RequireFromString("450.90"), Estoque: 30},
	}
	for _, p := range produtos {
		if _, err := store.CriarProduto(p); err != nil {
			return err
		}
	}

	valor := decimal.RequireFromString("4599.90")
	data := domain.NovaDataHora(time.Now())
	_, err := store.CriarMovimento(domain.MovimentoEstoqueCreateRequest{
		CodigoProduto:    1,
		TipoMovimentacao: domain.MovimentacaoSaida,
		QtdMovimentada:   2,
		ValorVenda:       &valor,
		DataVenda:        &data,
	})
	return err
}
