package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/pkg/logger"
)

func TestNewWithWriter_EscreveJSONComCampos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("debug", &buf)

	log.Info("Produto criado.", map[string]interface{}{"codigo": 7})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Produto criado.", entry["message"])
	assert.Equal(t, float64(7), entry["codigo"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriter_RespeitaNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("warn", &buf)

	log.Debug("ignorado", nil)
	log.Info("ignorado", nil)
	log.Warn("aviso", nil)
	log.Error("falha", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"warn"`)
	assert.Contains(t, lines[1], `"error":"boom"`)
}

func TestNewWithWriter_NivelDesconhecidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("verboso", &buf)

	log.Debug("ignorado", nil)
	assert.Empty(t, buf.String())

	log.Info("registrado", nil)
	assert.NotEmpty(t, buf.String())
}

func TestNewNop_NaoEscreve(t *testing.T) {
	log := logger.NewNop()
	assert.NotPanics(t, func() {
		log.Info("nada", map[string]interface{}{"x": 1})
		log.Error("nada", errors.New("x"))
	})
}
