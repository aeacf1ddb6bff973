package model

import "time"

// Trade sides recorded in wallet history.
const (
	TradeBuy  = "BUY"
	TradeSell = "SELL"
)

// Position represents an open paper-trading position for one ticker.
// Quantity is always > 0 while the position exists; a position is deleted,
// not zeroed, when it is fully sold.
type Position struct {
	Quantity int64     `json:"quantity"`
	AvgCost  float64   `json:"avg_cost"`
	OpenedAt time.Time `json:"opened_at"`
}

// TradeRecord is an immutable, append-only history entry.
// RealizedPnL is populated on SELL records only.
type TradeRecord struct {
	Type        string    `json:"type"` // BUY or SELL
	Ticker      string    `json:"ticker"`
	Quantity    int64     `json:"quantity"`
	Price       float64   `json:"price"`
	Total       float64   `json:"total"`
	RealizedPnL float64   `json:"realized_pnl,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Wallet is the per-user paper-trading state.
type Wallet struct {
	InitialCapital float64              `json:"initial_capital"`
	AvailableCash  float64              `json:"available_cash"`
	Positions      map[string]*Position `json:"positions"`
	History        []TradeRecord        `json:"history"`
	CreatedAt      time.Time            `json:"created_at"`
}

// Clone returns a deep copy so callers can hand wallets across API
// boundaries without exposing ledger-internal state.
func (w *Wallet) Clone() *Wallet {
	cp := *w
	cp.Positions = make(map[string]*Position, len(w.Positions))
	for ticker, pos := range w.Positions {
		p := *pos
		cp.Positions[ticker] = &p
	}
	cp.History = make([]TradeRecord, len(w.History))
	copy(cp.History, w.History)
	return &cp
}

// PositionValue is the mark-to-market detail for one open position.
type PositionValue struct {
	Ticker       string  `json:"ticker"`
	Quantity     int64   `json:"quantity"`
	AvgCost      float64 `json:"avg_cost"`
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"market_value"`
	PnL          float64 `json:"pnl"`
	PnLPct       float64 `json:"pnl_pct"`
}

// Equity is the mark-to-market summary of a wallet.
type Equity struct {
	TotalEquity    float64         `json:"total_equity"`
	AvailableCash  float64         `json:"available_cash"`
	PositionsValue float64         `json:"positions_value"`
	InitialCapital float64         `json:"initial_capital"`
	ReturnPct      float64         `json:"return_pct"`
	Positions      []PositionValue `json:"positions"`
}
