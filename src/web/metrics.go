package web

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the dashboard's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	chartRenders        *prometheus.CounterVec
	chartRenderDuration *prometheus.HistogramVec
}

// NewMetrics registers the Go and process collectors plus the dashboard series.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bikedash_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bikedash_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		chartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bikedash_chart_renders_total",
			Help: "Chart renders by chart id and outcome.",
		}, []string{"chart", "outcome"}), // outcome: ok, prompt, error
		chartRenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bikedash_chart_render_duration_seconds",
			Help:    "Time spent rendering and encoding one chart.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"chart"}),
	}
	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.chartRenders,
		m.chartRenderDuration,
	)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, status).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// ObserveRender records one chart render.
func (m *Metrics) ObserveRender(chartID, outcome string, d time.Duration) {
	m.chartRenders.WithLabelValues(chartID, outcome).Inc()
	m.chartRenderDuration.WithLabelValues(chartID).Observe(d.Seconds())
}

// Registry exposes the registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
