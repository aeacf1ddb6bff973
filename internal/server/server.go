// Package server exposes the analytics core over HTTP and WebSocket. It
// holds no business logic: handlers parse parameters, call into the core
// packages and shape JSON responses. Heavy endpoints go through the TTL
// cache, which is purely an optimization.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"b3vision/internal/feed"
	"b3vision/internal/ledger"
	"b3vision/internal/logger"
	"b3vision/internal/markethours"
	"b3vision/internal/metrics"
	"b3vision/internal/model"
)

// Server wires the core components behind HTTP handlers.
type Server struct {
	provider     model.Provider
	cache        model.Cache
	ledger       *ledger.Ledger
	metrics      *metrics.Metrics
	feed         *feed.Generator
	riskFreeRate float64
}

// New builds a Server from injected collaborators.
func New(provider model.Provider, cache model.Cache, lg *ledger.Ledger, m *metrics.Metrics, riskFreeRate float64) *Server {
	return &Server{
		provider:     provider,
		cache:        cache,
		ledger:       lg,
		metrics:      m,
		feed:         feed.NewGenerator(provider.Tickers()),
		riskFreeRate: riskFreeRate,
	}
}

// Routes registers all HTTP routes on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)

	mux.HandleFunc("/api/b3/stocks", s.route("stocks", s.handleStocks))
	mux.HandleFunc("/api/b3/stock/", s.route("stock", s.handleStock))
	mux.HandleFunc("/api/b3/index", s.route("index", s.handleIndex))
	mux.HandleFunc("/api/b3/sectors", s.route("sectors", s.handleSectors))
	mux.HandleFunc("/api/b3/ranking", s.route("ranking", s.handleRanking))
	mux.HandleFunc("/api/b3/correlations", s.route("correlations", s.handleCorrelations))
	mux.HandleFunc("/api/b3/comparison", s.route("comparison", s.handleComparison))

	mux.HandleFunc("/api/b3/analysis/score/", s.route("score", s.handleScore))
	mux.HandleFunc("/api/b3/analysis/patterns/", s.route("patterns", s.handlePatterns))
	mux.HandleFunc("/api/b3/analysis/volume-profile/", s.route("volume_profile", s.handleVolumeProfile))
	mux.HandleFunc("/api/b3/analysis/advanced/", s.route("advanced", s.handleAdvanced))
	mux.HandleFunc("/api/b3/analysis/fibonacci/", s.route("fibonacci", s.handleFibonacci))
	mux.HandleFunc("/api/b3/analysis/comparator", s.route("comparator", s.handleComparator))

	mux.HandleFunc("/api/paper-trading/wallet/", s.route("wallet", s.handleWallet))
	mux.HandleFunc("/api/paper-trading/buy", s.route("buy", s.handleBuy))
	mux.HandleFunc("/api/paper-trading/sell", s.route("sell", s.handleSell))
	mux.HandleFunc("/api/paper-trading/equity/", s.route("equity", s.handleEquity))
	mux.HandleFunc("/api/paper-trading/reset/", s.route("reset", s.handleReset))

	mux.HandleFunc("/api/b3/cache/clear", s.route("cache_clear", s.handleCacheClear))

	mux.HandleFunc("/ws/market-feed", s.handleMarketFeed)

	return mux
}

// route wraps a handler with CORS, OPTIONS preflight and latency metrics.
func (s *Server) route(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORS(w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.NewRequestID(name, start))
		h(w, r.WithContext(ctx))
		dur := time.Since(start)
		s.metrics.HTTPRequestDur.WithLabelValues(name).Observe(dur.Seconds())
		attrs := append([]any{slog.String("route", name), slog.Duration("duration", dur)}, logger.WithRequest(ctx)...)
		slog.Debug("request served", attrs...)
	}
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"service":       "b3vision",
		"timestamp":     now.Format(time.RFC3339),
		"market_open":   markethours.IsOpen(now),
		"market_status": markethours.Status(now),
	})
}

// handleCacheClear invalidates cached responses. An optional "pattern"
// query narrows the sweep to keys containing it.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	pattern := r.URL.Query().Get("pattern")
	s.cache.Clear(pattern)
	slog.Info("cache cleared", "pattern", pattern)
	writeJSON(w, http.StatusOK, map[string]string{"message": "cache cleared"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

// writeError maps domain errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrInsufficientFunds),
		errors.Is(err, model.ErrNoPosition),
		errors.Is(err, model.ErrInsufficientShares):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		slog.Error("internal error", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// cached runs compute through the TTL cache under key. The cached payload
// is the marshalled response body.
func (s *Server) cached(key string, ttl time.Duration, compute func() (any, error)) ([]byte, error) {
	if body, ok := s.cache.Get(key); ok {
		s.metrics.CacheHits.Inc()
		return body, nil
	}
	s.metrics.CacheMisses.Inc()
	v, err := compute()
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, body, ttl)
	return body, nil
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
