package ledger

import (
	"errors"
	"math"
	"testing"

	"b3vision/internal/model"
)

// fakeStore keeps wallets in memory and can be told to fail the next save.
type fakeStore struct {
	wallets  map[string]*model.Wallet
	saves    int
	failNext bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{wallets: make(map[string]*model.Wallet)}
}

func (f *fakeStore) LoadAll() (map[string]*model.Wallet, error) {
	return f.wallets, nil
}

func (f *fakeStore) SaveAll(wallets map[string]*model.Wallet) error {
	if f.failNext {
		f.failNext = false
		return errors.New("disk full")
	}
	f.saves++
	snapshot := make(map[string]*model.Wallet, len(wallets))
	for id, w := range wallets {
		snapshot[id] = w.Clone()
	}
	f.wallets = snapshot
	return nil
}

func (f *fakeStore) Close() error { return nil }

func newTestLedger(t *testing.T) (*Ledger, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	l, err := New(store, 10000)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	return l, store
}

func TestGetWallet_CreatesWithInitialCapital(t *testing.T) {
	l, store := newTestLedger(t)

	w, err := l.GetWallet("u1")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if w.InitialCapital != 10000 || w.AvailableCash != 10000 {
		t.Errorf("expected fresh wallet with 10000 cash, got %+v", w)
	}
	if len(w.Positions) != 0 || len(w.History) != 0 {
		t.Errorf("expected empty positions and history")
	}
	if store.saves != 1 {
		t.Errorf("expected wallet creation to persist, saves=%d", store.saves)
	}
}

func TestBuy_WeightedAverageCost(t *testing.T) {
	l, _ := newTestLedger(t)

	if _, err := l.Buy("u1", "PETR4", 100, 30); err != nil {
		t.Fatalf("first buy: %v", err)
	}
	w, err := l.Buy("u1", "PETR4", 50, 36)
	if err != nil {
		t.Fatalf("second buy: %v", err)
	}

	pos := w.Positions["PETR4"]
	if pos == nil {
		t.Fatal("expected PETR4 position")
	}
	if pos.Quantity != 150 {
		t.Errorf("expected qty 150, got %d", pos.Quantity)
	}
	// (100*30 + 50*36) / 150 = 32
	if math.Abs(pos.AvgCost-32) > 1e-9 {
		t.Errorf("expected avg cost 32, got %v", pos.AvgCost)
	}
	// 10000 - 3000 - 1800 = 5200
	if math.Abs(w.AvailableCash-5200) > 1e-9 {
		t.Errorf("expected cash 5200, got %v", w.AvailableCash)
	}
	if len(w.History) != 2 || w.History[0].Type != model.TradeBuy {
		t.Errorf("expected 2 BUY records, got %+v", w.History)
	}
}

func TestBuy_InsufficientFunds(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.Buy("u1", "PETR4", 1000, 50) // 50000 > 10000
	if !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	w, _ := l.GetWallet("u1")
	if w.AvailableCash != 10000 || len(w.Positions) != 0 || len(w.History) != 0 {
		t.Errorf("wallet must be unmodified after failed buy, got %+v", w)
	}
}

func TestBuy_InvalidArguments(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Buy("u1", "PETR4", 0, 30); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for qty=0, got %v", err)
	}
	if _, err := l.Buy("u1", "PETR4", 10, -1); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative price, got %v", err)
	}
}

func TestSell_RealizedPnLAndPositionClose(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Buy("u1", "VALE3", 100, 60); err != nil {
		t.Fatalf("buy: %v", err)
	}

	w, realized, err := l.Sell("u1", "VALE3", 40, 66)
	if err != nil {
		t.Fatalf("partial sell: %v", err)
	}
	// (66-60)*40 = 240
	if math.Abs(realized-240) > 1e-9 {
		t.Errorf("expected realized 240, got %v", realized)
	}
	if w.Positions["VALE3"].Quantity != 60 {
		t.Errorf("expected 60 shares left, got %d", w.Positions["VALE3"].Quantity)
	}
	// avg cost unchanged by a sell
	if w.Positions["VALE3"].AvgCost != 60 {
		t.Errorf("expected avg cost still 60, got %v", w.Positions["VALE3"].AvgCost)
	}

	w, realized, err = l.Sell("u1", "VALE3", 60, 55)
	if err != nil {
		t.Fatalf("closing sell: %v", err)
	}
	if math.Abs(realized-(-300)) > 1e-9 {
		t.Errorf("expected realized -300, got %v", realized)
	}
	if _, ok := w.Positions["VALE3"]; ok {
		t.Errorf("expected position deleted at zero quantity")
	}
	// 10000 - 6000 + 40*66 + 60*55 = 9940
	if math.Abs(w.AvailableCash-9940) > 1e-9 {
		t.Errorf("expected cash 9940, got %v", w.AvailableCash)
	}
}

func TestSell_Errors(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, _, err := l.Sell("u1", "VALE3", 10, 50); !errors.Is(err, model.ErrNoPosition) {
		t.Errorf("expected ErrNoPosition, got %v", err)
	}
	if _, err := l.Buy("u1", "VALE3", 10, 50); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if _, _, err := l.Sell("u1", "VALE3", 20, 50); !errors.Is(err, model.ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}
	w, _ := l.GetWallet("u1")
	if w.Positions["VALE3"].Quantity != 10 {
		t.Errorf("position must be unmodified after failed sell")
	}
}

func TestPersistFailure_RollsBack(t *testing.T) {
	l, store := newTestLedger(t)
	if _, err := l.Buy("u1", "ITUB4", 100, 25); err != nil {
		t.Fatalf("buy: %v", err)
	}

	store.failNext = true
	_, err := l.Buy("u1", "ITUB4", 100, 25)
	if err == nil {
		t.Fatal("expected error when store fails")
	}

	w, _ := l.GetWallet("u1")
	if w.Positions["ITUB4"].Quantity != 100 {
		t.Errorf("expected rollback to 100 shares, got %d", w.Positions["ITUB4"].Quantity)
	}
	if math.Abs(w.AvailableCash-7500) > 1e-9 {
		t.Errorf("expected rollback to 7500 cash, got %v", w.AvailableCash)
	}
	if len(w.History) != 1 {
		t.Errorf("expected 1 history record after rollback, got %d", len(w.History))
	}
}

func TestMarkToMarket(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Buy("u1", "PETR4", 100, 30); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if _, err := l.Buy("u1", "WEGE3", 50, 40); err != nil {
		t.Fatalf("buy: %v", err)
	}

	// price known only for PETR4; WEGE3 falls back to avg cost
	eq, err := l.MarkToMarket("u1", map[string]float64{"PETR4": 33})
	if err != nil {
		t.Fatalf("mark to market: %v", err)
	}

	// cash: 10000 - 3000 - 2000 = 5000
	if math.Abs(eq.AvailableCash-5000) > 1e-9 {
		t.Errorf("expected cash 5000, got %v", eq.AvailableCash)
	}
	// positions: 100*33 + 50*40 = 5300
	if math.Abs(eq.PositionsValue-5300) > 1e-9 {
		t.Errorf("expected positions value 5300, got %v", eq.PositionsValue)
	}
	if math.Abs(eq.TotalEquity-10300) > 1e-9 {
		t.Errorf("expected total equity 10300, got %v", eq.TotalEquity)
	}
	if math.Abs(eq.ReturnPct-3) > 1e-9 {
		t.Errorf("expected return 3%%, got %v", eq.ReturnPct)
	}

	var wege model.PositionValue
	for _, p := range eq.Positions {
		if p.Ticker == "WEGE3" {
			wege = p
		}
	}
	if wege.CurrentPrice != 40 || wege.PnL != 0 {
		t.Errorf("expected avg-cost fallback with zero pnl, got %+v", wege)
	}
}

func TestReset(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Buy("u1", "PETR4", 100, 30); err != nil {
		t.Fatalf("buy: %v", err)
	}

	w, err := l.Reset("u1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if w.AvailableCash != 10000 || w.InitialCapital != 10000 {
		t.Errorf("expected fresh wallet with 10000, got %+v", w)
	}
	if len(w.Positions) != 0 || len(w.History) != 0 {
		t.Errorf("expected cleared positions and history")
	}
}

func TestReset_PersistFailureRestoresOldWallet(t *testing.T) {
	l, store := newTestLedger(t)
	if _, err := l.Buy("u1", "PETR4", 100, 30); err != nil {
		t.Fatalf("buy: %v", err)
	}

	store.failNext = true
	if _, err := l.Reset("u1"); err == nil {
		t.Fatal("expected error when store fails")
	}

	w, _ := l.GetWallet("u1")
	if w.Positions["PETR4"] == nil || w.Positions["PETR4"].Quantity != 100 {
		t.Errorf("expected old wallet restored after failed reset, got %+v", w)
	}
}

func TestWalletsAreIsolatedPerUser(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Buy("u1", "PETR4", 10, 30); err != nil {
		t.Fatalf("buy: %v", err)
	}

	w2, err := l.GetWallet("u2")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if w2.AvailableCash != 10000 || len(w2.Positions) != 0 {
		t.Errorf("expected untouched wallet for u2, got %+v", w2)
	}
}

func TestGetWallet_ReturnsClone(t *testing.T) {
	l, _ := newTestLedger(t)
	w1, _ := l.GetWallet("u1")
	w1.AvailableCash = 1

	w2, _ := l.GetWallet("u1")
	if w2.AvailableCash != 10000 {
		t.Errorf("mutating a returned wallet must not affect the ledger")
	}
}
