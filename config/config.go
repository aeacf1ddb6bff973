package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// HTTP
	ListenAddr  string
	MetricsAddr string

	// Wallet persistence: "file" (JSON snapshot) or "sqlite"
	WalletBackend string
	WalletPath    string
	SQLitePath    string

	// Cache: empty RedisAddr selects the in-memory cache
	RedisAddr     string
	RedisPassword string

	// Ledger / comparator defaults
	DefaultCapital float64
	RiskFreeRate   float64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8000"),
		MetricsAddr: getEnv("METRICS_ADDR", ":9090"),

		WalletBackend: getEnv("WALLET_BACKEND", "file"),
		WalletPath:    getEnv("WALLET_PATH", "data/wallets.json"),
		SQLitePath:    getEnv("SQLITE_PATH", "data/wallets.db"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		DefaultCapital: getEnvFloat("DEFAULT_CAPITAL", 10000),
		RiskFreeRate:   getEnvFloat("RISK_FREE_RATE", 0.1),
	}
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] invalid float for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return f
}
