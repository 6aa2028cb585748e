package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/pkg/metrics"
)

func TestInstrument_ContaPorStatusEMetodo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/produtos/99" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewTransport(reg)
	client := &http.Client{Transport: m.Instrument(nil)}

	for _, path := range []string{"/produtos", "/produtos", "/produtos/99"} {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Requests.WithLabelValues("200", "get")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("404", "get")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlight))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewTransport(reg)
	m.Requests.WithLabelValues("201", "post").Inc()

	path := filepath.Join(t.TempDir(), "stockadmin.prom")
	require.NoError(t, metrics.WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `stockadmin_http_client_requests_total{code="201",method="post"} 1`)
}
