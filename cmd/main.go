// Comando stockadmin: cliente de linha de comando do backend de estoque.
//
//	stockadmin <recurso> <ação> [flags]
//
// A saída é JSON indentado em stdout; erros vão para stderr como
// "erro: <mensagem>" com status 1 (2 para erros de uso).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"stockadmin/config"
	apperror "stockadmin/internal/errors"
	"stockadmin/internal/pkg/httpclient"
	"stockadmin/internal/pkg/logger"
	"stockadmin/internal/pkg/metrics"
	"stockadmin/internal/pkg/token"
	"stockadmin/internal/service/movimentoservice"
	"stockadmin/internal/service/produtoservice"
)

func main() {
	// O .env é opcional: as variáveis podem vir apenas do ambiente.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("Aviso: erro ao ler .env, usando apenas o ambiente.", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app reúne as dependências montadas para um comando.
type app struct {
	produtos   *produtoservice.Service
	movimentos *movimentoservice.Service
	log        logger.Logger
	stdout     io.Writer
}

// run carrega a configuração, monta os clientes e executa o comando.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "erro: %v\n", err)
		return 1
	}
	appLog := logger.New(cfg.LogLevel, cfg.Environment, stderr)

	registry := prometheus.NewRegistry()
	clientMetrics := metrics.NewTransport(registry)

	var tokens token.Source
	if cfg.JWTSecret != "" {
		tokens = token.NewService(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTSubject, cfg.JWTRole)
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.HTTPTimeout,
		Tokens:    tokens,
		Transport: clientMetrics.Instrument(nil),
		Logger:    appLog,
	})
	if err != nil {
		fmt.Fprintf(stderr, "erro: %v\n", err)
		return 1
	}
	appLog.Debug("Cliente configurado.", map[string]interface{}{"api_url": client.BaseURL()})

	a := &app{
		produtos:   produtoservice.NewService(client, appLog),
		movimentos: movimentoservice.NewService(client, appLog),
		log:        appLog,
		stdout:     stdout,
	}

	err = a.dispatch(ctx, args)

	if cfg.MetricsTextfile != "" {
		if mErr := metrics.WriteTextfile(cfg.MetricsTextfile, registry); mErr != nil {
			appLog.Warn("Falha ao gravar métricas.", map[string]interface{}{"path": cfg.MetricsTextfile, "error": mErr.Error()})
		}
	}

	return exitCode(err, stderr, appLog)
}

// exitCode imprime o erro e devolve o status de saída correspondente.
func exitCode(err error, stderr io.Writer, log logger.Logger) int {
	if err == nil {
		return 0
	}

	var uErr *usageError
	if errors.As(err, &uErr) {
		fmt.Fprintf(stderr, "erro: %s\n\n%s\n", uErr.msg, uso)
		return 2
	}

	var cErr *commandError
	fallback := ""
	if errors.As(err, &cErr) {
		fallback = cErr.fallback
	}

	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		log.Debug("Comando falhou.", map[string]interface{}{
			"categoria": appErr.Category(),
			"status":    appErr.HTTPStatus(),
			"detalhe":   err.Error(),
		})
	} else {
		log.Error("Comando falhou.", err)
	}

	fmt.Fprintf(stderr, "erro: %s\n", apperror.Mensagem(err, fallback))
	if apperror.IsConflict(err) && cErr != nil && cErr.dica != "" {
		fmt.Fprintln(stderr, cErr.dica)
	}
	return 1
}

const uso = `uso: stockadmin <recurso> <ação> [flags]

recursos e ações:
  produtos   listar | obter | criar | atualizar | excluir | resumo | lucro
  movimentos listar | obter | criar
  relatorio  -formato xlsx|pdf|csv -saida arquivo [-tipo]

use "stockadmin <recurso> <ação> -h" para as flags de cada ação.`
