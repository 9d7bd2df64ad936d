package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bnema/bezier/internal/application/store"
)

// Metrics holds the Prometheus collectors of one server.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal *prometheus.CounterVec
	Mutations     *prometheus.CounterVec
	WSConnections prometheus.Gauge
	WSDropped     prometheus.Counter
}

// NewMetrics creates collectors on a private registry, so several servers
// can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bezier_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bezier_store_mutations_total",
				Help: "Total number of committed store mutations",
			},
			[]string{"topic", "op"},
		),
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bezier_ws_connections",
				Help: "Number of open event websocket connections",
			},
		),
		WSDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bezier_ws_dropped_clients_total",
				Help: "Event subscribers disconnected for falling behind",
			},
		),
	}
}

// Observe counts one store event.
func (m *Metrics) Observe(e store.Event) {
	m.Mutations.WithLabelValues(string(e.Topic), e.Op).Inc()
}

// Attach counts the events of every source.
func (m *Metrics) Attach(sources ...EventSource) {
	for _, src := range sources {
		src.Subscribe(m.Observe)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
