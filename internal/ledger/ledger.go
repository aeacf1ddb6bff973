// Package ledger implements the paper-trading wallet: per-user position
// and cash accounting with average-cost basis, realized/unrealized P&L and
// synchronous persistence.
//
// All mutations run under a single mutex for the whole
// read-modify-write-persist cycle, so concurrent buys and sells never lose
// updates. A mutating call does not report success until the wallet store
// has durably written the new state; on a store failure the in-memory
// mutation is rolled back and the error propagates.
package ledger

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"b3vision/internal/model"
)

// DefaultInitialCapital seeds wallets created on first access.
const DefaultInitialCapital = 10000.0

// Ledger manages all paper-trading wallets for a deployment.
type Ledger struct {
	mu             sync.Mutex
	store          model.WalletStore
	wallets        map[string]*model.Wallet
	initialCapital float64
	now            func() time.Time
}

// New creates a Ledger backed by the given store, loading any previously
// persisted wallets.
func New(store model.WalletStore, initialCapital float64) (*Ledger, error) {
	if initialCapital <= 0 {
		initialCapital = DefaultInitialCapital
	}
	wallets, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("ledger: load wallets: %w", err)
	}
	if wallets == nil {
		wallets = make(map[string]*model.Wallet)
	}
	return &Ledger{
		store:          store,
		wallets:        wallets,
		initialCapital: initialCapital,
		now:            time.Now,
	}, nil
}

// GetWallet returns the user's wallet, creating and persisting a fresh one
// seeded with the default initial capital when absent.
func (l *Ledger) GetWallet(userID string) (*model.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, err := l.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return w.Clone(), nil
}

// Buy debits cash and opens or grows a position at a quantity-weighted
// average cost, appends a BUY record and persists. Fails with
// ErrInsufficientFunds when qty*price exceeds available cash; the wallet
// is left unmodified on any failure.
func (l *Ledger) Buy(userID, ticker string, qty int64, price float64) (*model.Wallet, error) {
	if qty <= 0 || price <= 0 {
		return nil, fmt.Errorf("ledger: qty and price must be positive: %w", model.ErrInvalidArgument)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	w, err := l.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	total := float64(qty) * price
	if total > w.AvailableCash {
		return nil, fmt.Errorf("ledger: cost %.2f exceeds available cash %.2f: %w",
			total, w.AvailableCash, model.ErrInsufficientFunds)
	}

	backup := w.Clone()
	w.AvailableCash -= total
	if pos, ok := w.Positions[ticker]; ok {
		newQty := pos.Quantity + qty
		pos.AvgCost = (pos.AvgCost*float64(pos.Quantity) + price*float64(qty)) / float64(newQty)
		pos.Quantity = newQty
	} else {
		w.Positions[ticker] = &model.Position{
			Quantity: qty,
			AvgCost:  price,
			OpenedAt: l.now(),
		}
	}
	w.History = append(w.History, model.TradeRecord{
		Type:      model.TradeBuy,
		Ticker:    ticker,
		Quantity:  qty,
		Price:     price,
		Total:     total,
		Timestamp: l.now(),
	})

	if err := l.persist(userID, backup); err != nil {
		return nil, err
	}
	slog.Info("paper buy", "user", userID, "ticker", ticker, "qty", qty, "price", price)
	return w.Clone(), nil
}

// Sell credits cash, realizes P&L against the average cost, shrinks or
// deletes the position, appends a SELL record and persists. Fails with
// ErrNoPosition when the ticker is not held and ErrInsufficientShares when
// qty exceeds the held quantity; the wallet is left unmodified on failure.
func (l *Ledger) Sell(userID, ticker string, qty int64, price float64) (*model.Wallet, float64, error) {
	if qty <= 0 || price <= 0 {
		return nil, 0, fmt.Errorf("ledger: qty and price must be positive: %w", model.ErrInvalidArgument)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	w, err := l.getOrCreate(userID)
	if err != nil {
		return nil, 0, err
	}
	pos, ok := w.Positions[ticker]
	if !ok {
		return nil, 0, fmt.Errorf("ledger: %s not held: %w", ticker, model.ErrNoPosition)
	}
	if qty > pos.Quantity {
		return nil, 0, fmt.Errorf("ledger: only %d shares held: %w", pos.Quantity, model.ErrInsufficientShares)
	}

	backup := w.Clone()
	total := float64(qty) * price
	realized := (price - pos.AvgCost) * float64(qty)

	w.AvailableCash += total
	pos.Quantity -= qty
	if pos.Quantity == 0 {
		delete(w.Positions, ticker)
	}
	w.History = append(w.History, model.TradeRecord{
		Type:        model.TradeSell,
		Ticker:      ticker,
		Quantity:    qty,
		Price:       price,
		Total:       total,
		RealizedPnL: realized,
		Timestamp:   l.now(),
	})

	if err := l.persist(userID, backup); err != nil {
		return nil, 0, err
	}
	slog.Info("paper sell", "user", userID, "ticker", ticker, "qty", qty, "price", price, "realized_pnl", realized)
	return w.Clone(), realized, nil
}

// MarkToMarket values every open position at the supplied current price,
// falling back to the average cost for tickers absent from the map. This
// fallback is deliberate degrade-gracefully behavior, not an error.
func (l *Ledger) MarkToMarket(userID string, prices map[string]float64) (*model.Equity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, err := l.getOrCreate(userID)
	if err != nil {
		return nil, err
	}

	eq := &model.Equity{
		AvailableCash:  w.AvailableCash,
		InitialCapital: w.InitialCapital,
		Positions:      []model.PositionValue{},
	}
	for ticker, pos := range w.Positions {
		price, ok := prices[ticker]
		if !ok {
			price = pos.AvgCost
		}
		value := float64(pos.Quantity) * price
		pnl := (price - pos.AvgCost) * float64(pos.Quantity)
		pnlPct := 0.0
		if pos.AvgCost != 0 {
			pnlPct = (price/pos.AvgCost - 1) * 100
		}
		eq.PositionsValue += value
		eq.Positions = append(eq.Positions, model.PositionValue{
			Ticker:       ticker,
			Quantity:     pos.Quantity,
			AvgCost:      pos.AvgCost,
			CurrentPrice: price,
			MarketValue:  value,
			PnL:          pnl,
			PnLPct:       pnlPct,
		})
	}
	eq.TotalEquity = eq.AvailableCash + eq.PositionsValue
	if w.InitialCapital != 0 {
		eq.ReturnPct = (eq.TotalEquity/w.InitialCapital - 1) * 100
	}
	return eq, nil
}

// Reset deletes the wallet and recreates it with the same initial capital,
// discarding all positions and history irrevocably.
func (l *Ledger) Reset(userID string) (*model.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	old, ok := l.wallets[userID]
	capital := l.initialCapital
	if ok {
		capital = old.InitialCapital
	}
	fresh := l.newWallet(capital)
	l.wallets[userID] = fresh
	if err := l.store.SaveAll(l.wallets); err != nil {
		if ok {
			l.wallets[userID] = old
		} else {
			delete(l.wallets, userID)
		}
		return nil, fmt.Errorf("ledger: persist reset: %w", err)
	}
	slog.Info("wallet reset", "user", userID, "initial_capital", capital)
	return fresh.Clone(), nil
}

// getOrCreate returns the live wallet for a user, creating and persisting
// one when missing. Caller must hold l.mu.
func (l *Ledger) getOrCreate(userID string) (*model.Wallet, error) {
	if w, ok := l.wallets[userID]; ok {
		return w, nil
	}
	w := l.newWallet(l.initialCapital)
	l.wallets[userID] = w
	if err := l.store.SaveAll(l.wallets); err != nil {
		delete(l.wallets, userID)
		return nil, fmt.Errorf("ledger: persist new wallet: %w", err)
	}
	slog.Info("wallet created", "user", userID, "initial_capital", w.InitialCapital)
	return w, nil
}

func (l *Ledger) newWallet(capital float64) *model.Wallet {
	return &model.Wallet{
		InitialCapital: capital,
		AvailableCash:  capital,
		Positions:      make(map[string]*model.Position),
		History:        []model.TradeRecord{},
		CreatedAt:      l.now(),
	}
}

// persist writes the full wallet map; on failure the user's wallet is
// rolled back to the pre-mutation backup. Caller must hold l.mu.
func (l *Ledger) persist(userID string, backup *model.Wallet) error {
	if err := l.store.SaveAll(l.wallets); err != nil {
		l.wallets[userID] = backup
		return fmt.Errorf("ledger: persist wallets: %w", err)
	}
	return nil
}
