package model

import "time"

// ── Collaborator Port Interfaces ──
// These interfaces decouple the analytics core from concrete collaborators
// (market-data provider, TTL cache, wallet persistence). Each implementation
// is injected at construction time so tests can substitute fakes.

// Provider fetches market data. Implementations must tolerate unknown
// tickers by returning an empty Series or ErrNotFound, never panicking
// past this boundary.
type Provider interface {
	// Series returns the historical OHLCV series for a ticker over a
	// named period ("1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y",
	// "max"). An unknown ticker yields an empty series and nil error.
	Series(ticker, period string) (*Series, error)

	// Quote returns the descriptive snapshot for a ticker.
	Quote(ticker string) (*QuoteInfo, error)

	// Tickers returns the known ticker universe.
	Tickers() []string

	// Sectors maps sector name to its member tickers.
	Sectors() map[string][]string

	// Index returns the benchmark index series (IBOV) for a period.
	Index(period string) (*Series, error)
}

// Cache is a TTL key-value store. Caching is a caller-side optimization
// only; every cached computation is idempotent and correct without it.
type Cache interface {
	// Get returns the raw cached value, or false if absent/expired.
	Get(key string) ([]byte, bool)

	// Set stores a value with a TTL.
	Set(key string, value []byte, ttl time.Duration)

	// Clear removes all entries whose key contains pattern; empty
	// pattern clears everything.
	Clear(pattern string)
}

// WalletStore persists the whole wallet map as a single durable snapshot,
// rewritten on every ledger mutation.
type WalletStore interface {
	// LoadAll reads the full user→wallet mapping. A missing snapshot
	// yields an empty map and nil error.
	LoadAll() (map[string]*Wallet, error)

	// SaveAll durably rewrites the full mapping. A mutating ledger call
	// does not report success until SaveAll returns nil.
	SaveAll(wallets map[string]*Wallet) error

	// Close releases underlying resources.
	Close() error
}
