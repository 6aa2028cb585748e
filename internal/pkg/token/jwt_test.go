package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/pkg/token"
)

func TestToken_GeraTokenValido(t *testing.T) {
	svc := token.NewService("segredo-de-teste", time.Minute, "stockadmin-cli", "admin")

	tok, err := svc.Token()
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "stockadmin-cli", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, token.Issuer, claims.Issuer)
	assert.Equal(t, "stockadmin-cli", claims.Subject)
}

func TestValidateToken_SegredoDiferente(t *testing.T) {
	emissor := token.NewService("segredo-a", time.Minute, "cli", "admin")
	validador := token.NewService("segredo-b", time.Minute, "cli", "admin")

	tok, err := emissor.Token()
	require.NoError(t, err)

	_, err = validador.ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidateToken_Expirado(t *testing.T) {
	svc := token.NewService("segredo", -time.Minute, "cli", "admin")

	tok, err := svc.Token()
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token inválido")
}

func TestToken_SemSegredo(t *testing.T) {
	svc := token.NewService("", time.Minute, "cli", "admin")

	_, err := svc.Token()
	assert.Error(t, err)
}
