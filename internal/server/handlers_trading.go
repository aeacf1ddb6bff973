package server

import (
	"fmt"
	"net/http"
	"strconv"

	"b3vision/internal/model"
)

// tradeParams parses the shared buy/sell query parameters.
func tradeParams(r *http.Request) (userID, ticker string, qty int64, price float64, err error) {
	q := r.URL.Query()
	userID = q.Get("user_id")
	ticker = q.Get("ticker")
	if userID == "" || ticker == "" {
		return "", "", 0, 0, fmt.Errorf("user_id and ticker are required: %w", model.ErrInvalidArgument)
	}
	qty, err = strconv.ParseInt(q.Get("quantity"), 10, 64)
	if err != nil || qty <= 0 {
		return "", "", 0, 0, fmt.Errorf("quantity must be a positive integer: %w", model.ErrInvalidArgument)
	}
	price, err = strconv.ParseFloat(q.Get("price"), 64)
	if err != nil || price <= 0 {
		return "", "", 0, 0, fmt.Errorf("price must be a positive number: %w", model.ErrInvalidArgument)
	}
	return userID, ticker, qty, price, nil
}

// GET /api/paper-trading/wallet/{user_id}
func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	userID := pathSuffix(r, "/api/paper-trading/wallet/")
	if userID == "" {
		writeError(w, fmt.Errorf("user_id is required: %w", model.ErrInvalidArgument))
		return
	}
	wallet, err := s.ledger.GetWallet(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

// POST /api/paper-trading/buy?user_id=&ticker=&quantity=&price=
func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID, ticker, qty, price, err := tradeParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	wallet, err := s.ledger.Buy(userID, ticker, qty, price)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.TradesTotal.WithLabelValues(model.TradeBuy).Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Bought %dx %s at R$ %.2f", qty, ticker, price),
		"wallet":  wallet,
	})
}

// POST /api/paper-trading/sell?user_id=&ticker=&quantity=&price=
func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID, ticker, qty, price, err := tradeParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	wallet, realized, err := s.ledger.Sell(userID, ticker, qty, price)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.TradesTotal.WithLabelValues(model.TradeSell).Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("Sold %dx %s at R$ %.2f", qty, ticker, price),
		"realized_pnl": realized,
		"wallet":       wallet,
	})
}

// GET /api/paper-trading/equity/{user_id} — mark-to-market valuation at
// current provider prices.
func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	userID := pathSuffix(r, "/api/paper-trading/equity/")
	if userID == "" {
		writeError(w, fmt.Errorf("user_id is required: %w", model.ErrInvalidArgument))
		return
	}
	wallet, err := s.ledger.GetWallet(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	// current prices for held tickers only; a failed quote simply falls
	// back to average cost inside MarkToMarket
	prices := make(map[string]float64, len(wallet.Positions))
	for ticker := range wallet.Positions {
		if q, err := s.provider.Quote(ticker); err == nil {
			prices[ticker] = q.CurrentPrice
		}
	}

	equity, err := s.ledger.MarkToMarket(userID, prices)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, equity)
}

// POST /api/paper-trading/reset/{user_id}
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID := pathSuffix(r, "/api/paper-trading/reset/")
	if userID == "" {
		writeError(w, fmt.Errorf("user_id is required: %w", model.ErrInvalidArgument))
		return
	}
	wallet, err := s.ledger.Reset(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Wallet reset to initial capital",
		"wallet":  wallet,
	})
}
