package walletsql

import (
	"path/filepath"
	"testing"
	"time"

	"b3vision/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "wallets.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadAll_EmptyDatabase(t *testing.T) {
	s := newTestStore(t)
	wallets, err := s.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(wallets) != 0 {
		t.Errorf("expected empty map, got %d entries", len(wallets))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	in := map[string]*model.Wallet{
		"u1": {
			InitialCapital: 10000,
			AvailableCash:  4000,
			Positions: map[string]*model.Position{
				"VALE3": {Quantity: 100, AvgCost: 60, OpenedAt: now},
			},
			History: []model.TradeRecord{
				{Type: model.TradeBuy, Ticker: "VALE3", Quantity: 100, Price: 60, Total: 6000, Timestamp: now},
			},
			CreatedAt: now,
		},
		"u2": {InitialCapital: 5000, AvailableCash: 5000, Positions: map[string]*model.Position{}},
	}
	if err := s.SaveAll(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(out))
	}
	w := out["u1"]
	if w.AvailableCash != 4000 {
		t.Errorf("cash did not round-trip: %v", w.AvailableCash)
	}
	if pos := w.Positions["VALE3"]; pos == nil || pos.Quantity != 100 || pos.AvgCost != 60 {
		t.Errorf("position did not round-trip: %+v", pos)
	}
}

func TestSaveAll_ReplacesPreviousSnapshot(t *testing.T) {
	s := newTestStore(t)

	first := map[string]*model.Wallet{
		"gone": {InitialCapital: 1000, AvailableCash: 1000},
	}
	if err := s.SaveAll(first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := map[string]*model.Wallet{
		"kept": {InitialCapital: 2000, AvailableCash: 2000},
	}
	if err := s.SaveAll(second); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := out["gone"]; ok {
		t.Errorf("expected previous snapshot replaced")
	}
	if out["kept"] == nil || out["kept"].InitialCapital != 2000 {
		t.Errorf("expected kept wallet, got %+v", out["kept"])
	}
}
