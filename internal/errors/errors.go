package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"stockadmin/internal/domain"
)

// MensagemPadrao é o texto usado quando o backend não informa uma mensagem.
const MensagemPadrao = "Ocorreu um erro."

// AppError é a interface central para todos os erros devolvidos pelos clientes de recurso.
// Ela permite que o chamador (CLI, relatórios) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "TRANSPORT_ERROR")
	HTTPStatus() int  // Status HTTP recebido (0 quando não houve resposta)
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// backendMessenger é implementado pelos erros que carregam o corpo de erro do backend.
type backendMessenger interface {
	BackendMessage() string
}

// --- Erros de Resposta (o servidor respondeu com status != 2xx) ---

// ValidationError representa a rejeição do payload ou dos parâmetros (4xx genérico).
type ValidationError struct {
	Status  int
	Msg     string
	Backend domain.BackendError
}

func (e *ValidationError) Error() string          { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string       { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int        { return e.Status }
func (e *ValidationError) Unwrap() error          { return nil }
func (e *ValidationError) BackendMessage() string { return e.Backend.Message }

// NewValidationError cria um novo erro de validação (400 por padrão).
func NewValidationError(msg string) AppError {
	return &ValidationError{Status: http.StatusBadRequest, Msg: msg}
}

// NotFoundError representa a ausência do recurso solicitado (404).
type NotFoundError struct {
	Msg     string
	Backend domain.BackendError
}

func (e *NotFoundError) Error() string          { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string       { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int        { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error          { return nil }
func (e *NotFoundError) BackendMessage() string { return e.Backend.Message }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa uma recusa por regra de integridade (409),
// e.g. exclusão de produto que ainda possui movimentações.
type ConflictError struct {
	Msg     string
	Backend domain.BackendError
}

func (e *ConflictError) Error() string          { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string       { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int        { return http.StatusConflict }
func (e *ConflictError) Unwrap() error          { return nil }
func (e *ConflictError) BackendMessage() string { return e.Backend.Message }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// InternalError representa falhas do servidor (5xx) ou respostas que não puderam ser lidas.
type InternalError struct {
	Status  int
	Msg     string
	Err     error // Erro original subjacente (e.g., falha de decodificação)
	Backend domain.BackendError
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Erro Interno: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Erro Interno: %s", e.Msg)
}
func (e *InternalError) Category() string       { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int        { return e.Status }
func (e *InternalError) Unwrap() error          { return e.Err }
func (e *InternalError) BackendMessage() string { return e.Backend.Message }

// NewInternalError cria um erro interno (para falhas de decodificação ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Status: http.StatusInternalServerError, Msg: msg, Err: err}
}

// --- Erro de Transporte (nenhuma resposta recebida) ---

// TransportError representa falhas de rede: backend inacessível, DNS, timeout ou cancelamento.
type TransportError struct {
	Msg string
	Err error
}

func (e *TransportError) Error() string    { return fmt.Sprintf("Falha de comunicação: %s: %v", e.Msg, e.Err) }
func (e *TransportError) Category() string { return "TRANSPORT_ERROR" }
func (e *TransportError) HTTPStatus() int  { return 0 }
func (e *TransportError) Unwrap() error    { return e.Err }

// NewTransportError encapsula uma falha do cliente HTTP.
func NewTransportError(msg string, err error) AppError {
	return &TransportError{Msg: msg, Err: err}
}

// --- Tradução de Respostas ---

// FromResponse traduz uma resposta não-2xx no erro tipado correspondente.
// O corpo é lido como domain.BackendError; corpos vazios ou não-JSON são tolerados.
func FromResponse(status int, body []byte) AppError {
	var backend domain.BackendError
	if len(body) > 0 {
		_ = json.Unmarshal(body, &backend)
	}

	msg := strings.TrimSpace(backend.Message)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d %s", status, http.StatusText(status))
	}

	switch {
	case status == http.StatusNotFound:
		return &NotFoundError{Msg: msg, Backend: backend}
	case status == http.StatusConflict:
		return &ConflictError{Msg: msg, Backend: backend}
	case status >= 400 && status < 500:
		return &ValidationError{Status: status, Msg: msg, Backend: backend}
	default:
		return &InternalError{Status: status, Msg: msg, Backend: backend}
	}
}

// Mensagem extrai uma mensagem legível de qualquer erro devolvido pelos clientes.
// Usa o campo "message" do corpo de erro do backend quando presente e não vazio,
// caso contrário devolve fallback (ou MensagemPadrao, se fallback for vazio).
func Mensagem(err error, fallback string) string {
	if fallback == "" {
		fallback = MensagemPadrao
	}
	var bm backendMessenger
	if stderrors.As(err, &bm) {
		if msg := strings.TrimSpace(bm.BackendMessage()); msg != "" {
			return bm.BackendMessage()
		}
	}
	return fallback
}

// IsNotFound indica se err (ou algum erro da cadeia) é um NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

// IsConflict indica se err (ou algum erro da cadeia) é um ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return stderrors.As(err, &target)
}

// IsTransport indica se err (ou algum erro da cadeia) é um TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return stderrors.As(err, &target)
}

// Category devolve a categoria de um erro tipado, ou "UNKNOWN_ERROR".
func Category(err error) string {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Category()
	}
	return "UNKNOWN_ERROR"
}
