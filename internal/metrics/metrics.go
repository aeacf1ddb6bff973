// Package metrics registers and serves Prometheus metrics for the
// analytics service.
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	HTTPRequestDur  *prometheus.HistogramVec // labels: route
	IndicatorDur    prometheus.Histogram
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	TradesTotal     *prometheus.CounterVec // labels: side
	FeedClients     prometheus.Gauge
	ProviderFetches prometheus.Counter
}

// New registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers all metrics on the given registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "b3vision_http_request_duration_seconds",
			Help:    "HTTP handler latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		IndicatorDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "b3vision_indicator_compute_duration_seconds",
			Help:    "Full indicator set compute latency per series",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "b3vision_cache_hits_total",
			Help: "Cache hits on analytics endpoints",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "b3vision_cache_misses_total",
			Help: "Cache misses on analytics endpoints",
		}),
		TradesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b3vision_paper_trades_total",
			Help: "Paper trades executed (by side)",
		}, []string{"side"}),
		FeedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "b3vision_feed_clients",
			Help: "Connected market-feed WebSocket clients",
		}),
		ProviderFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "b3vision_provider_fetches_total",
			Help: "Series fetches from the market-data provider",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestDur,
		m.IndicatorDur,
		m.CacheHits,
		m.CacheMisses,
		m.TradesTotal,
		m.FeedClients,
		m.ProviderFetches,
	)
	return m
}

// Serve starts the /metrics endpoint on addr. Blocks; run in a goroutine.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	slog.Info("metrics listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics server failed", "err", err)
	}
}
