package model

import (
	"math"
	"testing"
	"time"
)

func TestSeriesReturns(t *testing.T) {
	s := &Series{Ticker: "TEST4", Bars: []Bar{
		{Close: 100}, {Close: 110}, {Close: 99},
	}}
	got := s.Returns()
	if len(got) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(got))
	}
	if math.Abs(got[0]-0.10) > 1e-9 {
		t.Errorf("expected 0.10, got %v", got[0])
	}
	if math.Abs(got[1]-(-0.1)) > 1e-9 {
		t.Errorf("expected -0.10, got %v", got[1])
	}
}

func TestSeriesReturns_ZeroPriorClose(t *testing.T) {
	s := &Series{Bars: []Bar{{Close: 0}, {Close: 10}}}
	got := s.Returns()
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("expected substituted 0 return after zero close, got %v", got)
	}
}

func TestSeriesReturns_TooShort(t *testing.T) {
	if got := (&Series{Bars: []Bar{{Close: 100}}}).Returns(); got != nil {
		t.Errorf("expected nil returns for a single bar, got %v", got)
	}
}

func TestTypicalPrice(t *testing.T) {
	b := Bar{High: 12, Low: 9, Close: 10.5}
	if got := b.TypicalPrice(); math.Abs(got-10.5) > 1e-9 {
		t.Errorf("expected 10.5, got %v", got)
	}
}

func TestWalletClone_Deep(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	w := &Wallet{
		InitialCapital: 10000,
		AvailableCash:  7000,
		Positions: map[string]*Position{
			"PETR4": {Quantity: 100, AvgCost: 30, OpenedAt: now},
		},
		History:   []TradeRecord{{Type: TradeBuy, Ticker: "PETR4", Quantity: 100, Price: 30}},
		CreatedAt: now,
	}

	cp := w.Clone()
	cp.AvailableCash = 1
	cp.Positions["PETR4"].Quantity = 1
	cp.Positions["NEW"] = &Position{Quantity: 5}
	cp.History[0].Price = 99

	if w.AvailableCash != 7000 {
		t.Errorf("clone mutation leaked into cash")
	}
	if w.Positions["PETR4"].Quantity != 100 {
		t.Errorf("clone mutation leaked into position")
	}
	if _, ok := w.Positions["NEW"]; ok {
		t.Errorf("clone map shares storage with original")
	}
	if w.History[0].Price != 30 {
		t.Errorf("clone history shares storage with original")
	}
}
