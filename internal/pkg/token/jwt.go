package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer identifica os tokens emitidos por esta ferramenta.
const Issuer = "stockadmin"

// Source fornece o token Bearer anexado a cada requisição ao backend.
type Source interface {
	Token() (string, error)
}

// CustomClaims define as informações de serviço carregadas no JWT.
// É obrigatório incorporar jwt.RegisteredClaims.
type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service emite tokens HS256 de curta duração com um segredo compartilhado com o backend.
type Service struct {
	secretKey []byte
	expiry    time.Duration
	subject   string
	role      string
	now       func() time.Time
}

// NewService cria uma nova instância do serviço de token.
func NewService(secretKey string, expiry time.Duration, subject, role string) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		subject:   subject,
		role:      role,
		now:       time.Now,
	}
}

// Token implementa Source: cada chamada emite um token novo.
func (s *Service) Token() (string, error) {
	return s.GenerateToken(s.subject, s.role)
}

// GenerateToken cria um novo JWT assinado contendo o ID e a Role informados.
func (s *Service) GenerateToken(userID string, userRole string) (string, error) {
	if len(s.secretKey) == 0 {
		return "", errors.New("segredo do token não configurado")
	}

	now := s.now()
	claims := CustomClaims{
		UserID: userID,
		Role:   userRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken valida o token string e retorna as claims se for válido.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token não é válido")
	}

	return claims, nil
}
