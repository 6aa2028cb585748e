// Package httpclient é a camada de transporte dos clientes de recurso:
// monta URLs a partir da base configurada, serializa corpos JSON e traduz
// respostas não-2xx para a taxonomia de internal/errors.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	apperror "stockadmin/internal/errors"
	"stockadmin/internal/pkg/logger"
	"stockadmin/internal/pkg/token"
)

// DefaultBaseURL é usado quando nenhuma URL de API é configurada.
const DefaultBaseURL = "http://localhost:8080"

// RequestIDHeader identifica cada requisição nos logs do cliente e do backend.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes limita a leitura de respostas (páginas grandes incluídas).
const maxBodyBytes = 10 << 20

// Config reúne as opções do transporte. Somente BaseURL é obrigatório na prática;
// os demais campos têm padrões seguros.
type Config struct {
	BaseURL   string
	Timeout   time.Duration     // 0 = sem timeout no cliente
	Tokens    token.Source      // opcional: adiciona Authorization: Bearer
	Transport http.RoundTripper // opcional: e.g. instrumentação de métricas
	Logger    logger.Logger
}

// Client executa requisições JSON contra o backend. É seguro para uso concorrente:
// nenhuma configuração é alterada após New.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  token.Source
	logger  logger.Logger
}

// New valida a URL base e cria o cliente.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("URL base inválida %q: %w", raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("URL base inválida %q: esquema deve ser http ou https", raw)
	}
	base.Path = strings.TrimRight(base.Path, "/")

	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		tokens:  cfg.Tokens,
		logger:  log,
	}, nil
}

// BaseURL devolve a URL base normalizada.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Get executa GET path?query e decodifica a resposta em out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post envia body como JSON e decodifica a resposta em out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put envia body como JSON e decodifica a resposta em out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete executa DELETE path; o corpo da resposta, se houver, é descartado.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do executa uma única troca requisição/resposta. Não há retentativas:
// qualquer falha é devolvida ao chamador como um apperror.AppError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	requestID := uuid.NewString()
	target := c.resolve(path, query)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternalError("falha ao serializar payload", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperror.NewInternalError("falha ao criar requisição", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return apperror.NewInternalError("falha ao emitir token de serviço", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	fields := map[string]interface{}{"method": method, "path": path, "request_id": requestID}
	c.logger.Debug("Enviando requisição ao backend.", fields)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Falha de comunicação com o backend.", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return apperror.NewTransportError("requisição cancelada ou expirada", err)
		}
		return apperror.NewTransportError(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return apperror.NewTransportError("falha ao ler resposta", err)
	}

	fields = map[string]interface{}{
		"method":      method,
		"path":        path,
		"request_id":  requestID,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := apperror.FromResponse(resp.StatusCode, raw)
		if resp.StatusCode >= 500 {
			c.logger.Error(fmt.Sprintf("Backend respondeu %d.", resp.StatusCode), appErr)
		} else {
			c.logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", resp.StatusCode, appErr.Category()), fields)
		}
		return appErr
	}
	c.logger.Debug("Resposta recebida do backend.", fields)

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &apperror.InternalError{Status: resp.StatusCode, Msg: "resposta do backend em formato inesperado", Err: err}
	}
	return nil
}

// resolve concatena o caminho à URL base, preservando prefixos (e.g. /api).
func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u.Path = c.baseURL.Path + path
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}
