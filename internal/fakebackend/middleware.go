package fakebackend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"stockadmin/internal/pkg/logger"
	"stockadmin/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
type ContextKey int

const (
	ClaimsKey ContextKey = iota
)

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware valida o JWT do header Authorization e anexa as claims ao
// contexto. Requisições sem token válido recebem 401.
func NewAuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || tokenString == "" {
				escreverErro(w, r, http.StatusUnauthorized, "Token de autorização ausente ou malformado.")
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				escreverErro(w, r, http.StatusUnauthorized, "Token inválido ou expirado.")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extrai as claims anexadas pelo middleware de autenticação.
func ClaimsFromContext(ctx context.Context) (token.CustomClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(token.CustomClaims)
	return claims, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware registra método, caminho, status e o X-Request-ID recebido.
func LoggingMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			if id := r.Header.Get("X-Request-ID"); id != "" {
				w.Header().Set("X-Request-ID", id)
			}

			next.ServeHTTP(rec, r)

			log.Info("Requisição atendida.", map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"request_id":  r.Header.Get("X-Request-ID"),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}
