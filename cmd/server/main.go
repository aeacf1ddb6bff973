package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"b3vision/config"
	"b3vision/internal/cache"
	"b3vision/internal/ledger"
	"b3vision/internal/logger"
	"b3vision/internal/marketdata"
	"b3vision/internal/metrics"
	"b3vision/internal/model"
	"b3vision/internal/server"
	"b3vision/internal/store/walletfile"
	"b3vision/internal/store/walletsql"
)

func main() {
	logger.Init("b3vision", slog.LevelInfo)
	slog.Info("starting")

	cfg := config.Load()

	store, err := newWalletStore(cfg)
	if err != nil {
		slog.Error("wallet store init failed", "backend", cfg.WalletBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	lg, err := ledger.New(store, cfg.DefaultCapital)
	if err != nil {
		slog.Error("ledger init failed", "error", err)
		os.Exit(1)
	}

	c := newCache(cfg)
	provider := marketdata.NewB3()
	m := metrics.New()
	go metrics.Serve(cfg.MetricsAddr)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(provider, c, lg, m, cfg.RiskFreeRate).Routes(),
	}

	// Periodic cleanup keeps the in-memory cache bounded.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if mem, ok := c.(*cache.Memory); ok {
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					mem.CleanupExpired()
				}
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("serving", "addr", cfg.ListenAddr, "metrics_addr", cfg.MetricsAddr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCh
	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown incomplete", "error", err)
	}
}

func newWalletStore(cfg *config.Config) (model.WalletStore, error) {
	if cfg.WalletBackend == "sqlite" {
		return walletsql.New(cfg.SQLitePath)
	}
	return walletfile.New(cfg.WalletPath)
}

func newCache(cfg *config.Config) model.Cache {
	if cfg.RedisAddr != "" {
		r, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err == nil {
			slog.Info("redis cache connected", "addr", cfg.RedisAddr)
			return r
		}
		slog.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
	}
	return cache.NewMemory()
}
