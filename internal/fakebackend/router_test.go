package fakebackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/domain"
	"stockadmin/internal/pkg/token"
)

func TestRouter_ErrorBodyFormat(t *testing.T) {
	_, handler := New(nil, Options{})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/produtos/42")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body domain.BackendError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Produto 42 não encontrado.", body.Message)
	assert.Equal(t, 404, body.Status)
	assert.Equal(t, "/produtos/42", body.Path)
}

func TestRouter_PageOutOfRangeIsValidationError(t *testing.T) {
	_, handler := New(nil, Options{})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	for _, q := range []string{
		"page=2305843009213693952&size=4",
		"page=4611686018427387904&size=4",
		"page=9223372036854775807&size=1",
	} {
		resp, err := http.Get(srv.URL + "/produtos?" + q)
		require.NoError(t, err, q)

		var body domain.BackendError
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body), q)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "page fora do intervalo permitido.", body.Message, q)
	}
}

func TestRouter_CreateAndListWithPaging(t *testing.T) {
	_, handler := New(nil, Options{})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	for _, d := range []string{"A", "B", "C"} {
		resp, err := http.Post(srv.URL+"/produtos", "application/json",
			strings.NewReader(`{"descricao":"`+d+`","tipoProduto":"MOVEL","valorNoFornecedor":10,"estoque":1}`))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/produtos?page=0&size=2&sort=codigo,desc")
	require.NoError(t, err)
	defer resp.Body.Close()

	var page domain.Page[domain.Produto]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(3), page.Content[0].Codigo)
	assert.False(t, page.Last)
}

func TestRouter_InvalidPaging(t *testing.T) {
	_, handler := New(nil, Options{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movimentos?size=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AuthRequiredWhenValidatorSet(t *testing.T) {
	tokens := token.NewService("segredo", time.Minute, "cli", "ADMIN")
	_, handler := New(nil, Options{Validator: tokens})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/produtos", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := tokens.Token()
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/produtos", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}
