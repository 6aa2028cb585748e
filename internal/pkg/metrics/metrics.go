// Package metrics instrumenta as chamadas HTTP feitas ao backend de estoque.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stockadmin"

// Transport agrupa os coletores do cliente HTTP.
type Transport struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewTransport cria e registra os coletores em reg.
func NewTransport(reg prometheus.Registerer) *Transport {
	m := &Transport{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http_client",
			Name:      "requests_total",
			Help:      "Requisições ao backend por status e método.",
		}, []string{"code", "method"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http_client",
			Name:      "request_duration_seconds",
			Help:      "Duração das requisições ao backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http_client",
			Name:      "in_flight_requests",
			Help:      "Requisições ao backend em andamento.",
		}),
	}
	reg.MustRegister(m.Requests, m.Duration, m.InFlight)
	return m
}

// Instrument envolve next com contagem, duração e requisições em andamento.
// Falhas de transporte (sem resposta) não são contadas em Requests.
func (m *Transport) Instrument(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(m.InFlight,
		promhttp.InstrumentRoundTripperCounter(m.Requests,
			promhttp.InstrumentRoundTripperDuration(m.Duration, next),
		),
	)
}

// WriteTextfile grava as métricas de g no formato texto (coletor textfile do node_exporter).
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
