package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"b3vision/internal/compare"
	"b3vision/internal/indicator"
	"b3vision/internal/model"
	"b3vision/internal/score"
)

// GET /api/b3/analysis/score/{ticker}?period= — composite technical score.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	ticker := pathSuffix(r, "/api/b3/analysis/score/")
	period := queryDefault(r, "period", "3mo")

	sr, err := s.fetchSeries(ticker, period)
	if err != nil {
		writeError(w, err)
		return
	}
	set := indicator.Compute(sr)
	result := score.Technical(sr, set)

	writeJSON(w, http.StatusOK, map[string]any{
		"ticker": sr.Ticker,
		"period": period,
		"score":  result,
	})
}

// GET /api/b3/analysis/patterns/{ticker}?period= — candle patterns plus
// anomalies on the latest bar.
func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	ticker := pathSuffix(r, "/api/b3/analysis/patterns/")
	period := queryDefault(r, "period", "1mo")

	sr, err := s.fetchSeries(ticker, period)
	if err != nil {
		writeError(w, err)
		return
	}
	patterns := indicator.DetectPatterns(sr)

	// collect the bars where each pattern fired, most recent last
	type hit struct {
		Date    string `json:"date"`
		Pattern string `json:"pattern"`
	}
	var hits []hit
	for i := range sr.Bars {
		date := sr.Bars[i].Date.Format("2006-01-02")
		if patterns.Doji[i] {
			hits = append(hits, hit{date, "doji"})
		}
		if patterns.Hammer[i] {
			hits = append(hits, hit{date, "hammer"})
		}
		if patterns.BullishEngulfing[i] {
			hits = append(hits, hit{date, "bullish_engulfing"})
		}
		if patterns.BearishEngulfing[i] {
			hits = append(hits, hit{date, "bearish_engulfing"})
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ticker":    sr.Ticker,
		"period":    period,
		"patterns":  hits,
		"anomalies": indicator.DetectAnomalies(sr),
	})
}

// GET /api/b3/analysis/volume-profile/{ticker}?period=&bins=
func (s *Server) handleVolumeProfile(w http.ResponseWriter, r *http.Request) {
	ticker := pathSuffix(r, "/api/b3/analysis/volume-profile/")
	period := queryDefault(r, "period", "3mo")
	bins, err := strconv.Atoi(queryDefault(r, "bins", strconv.Itoa(indicator.DefaultProfileBins)))
	if err != nil || bins <= 0 || bins > 200 {
		writeError(w, fmt.Errorf("bins must be a positive integer up to 200: %w", model.ErrInvalidArgument))
		return
	}

	sr, err := s.fetchSeries(ticker, period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ticker":  sr.Ticker,
		"period":  period,
		"profile": indicator.VolumeProfile(sr, bins),
	})
}

// GET /api/b3/analysis/advanced/{ticker}?period= — the advanced oscillator
// and level set for one ticker.
func (s *Server) handleAdvanced(w http.ResponseWriter, r *http.Request) {
	ticker := pathSuffix(r, "/api/b3/analysis/advanced/")
	period := queryDefault(r, "period", "6mo")

	sr, err := s.fetchSeries(ticker, period)
	if err != nil {
		writeError(w, err)
		return
	}
	set := indicator.Compute(sr)

	writeJSON(w, http.StatusOK, map[string]any{
		"ticker": sr.Ticker,
		"period": period,
		"latest": map[string]any{
			"vwap":        set.VWAP.Last(),
			"obv":         set.OBV.Last(),
			"mfi":         set.MFI.Last(),
			"force_index": set.ForceIndex.Last(),
			"ad":          set.AD.Last(),
			"roc":         set.ROC.Last(),
			"momentum":    set.Momentum.Last(),
			"adx":         set.ADX.Last(),
		},
		"pivots": indicator.Pivots(sr),
		"levels": indicator.SupportResistance(sr, 20),
	})
}

// GET /api/b3/analysis/fibonacci/{ticker}?period=
func (s *Server) handleFibonacci(w http.ResponseWriter, r *http.Request) {
	ticker := pathSuffix(r, "/api/b3/analysis/fibonacci/")
	period := queryDefault(r, "period", "3mo")

	sr, err := s.fetchSeries(ticker, period)
	if err != nil {
		writeError(w, err)
		return
	}
	fib := indicator.Fibonacci(sr)
	if fib == nil {
		writeError(w, fmt.Errorf("need at least 2 bars for fibonacci: %w", model.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ticker":    sr.Ticker,
		"period":    period,
		"fibonacci": fib,
	})
}

// parseTickers splits a comma-separated ticker list, requiring at least
// min entries.
func parseTickers(raw string, min int) ([]string, error) {
	var tickers []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) < min {
		return nil, fmt.Errorf("provide at least %d tickers: %w", min, model.ErrInvalidArgument)
	}
	return tickers, nil
}

// fetchMany loads a series per ticker, skipping failures and empties.
func (s *Server) fetchMany(tickers []string, period string) (map[string]*model.Series, error) {
	out := make(map[string]*model.Series, len(tickers))
	for _, t := range tickers {
		sr, err := s.provider.Series(t, period)
		if err != nil {
			if errors.Is(err, model.ErrInvalidArgument) {
				return nil, err // malformed period is the caller's fault
			}
			continue
		}
		if sr.Empty() {
			continue
		}
		out[sr.Ticker] = sr
	}
	return out, nil
}

// POST /api/b3/analysis/comparator?tickers=&period= — risk/return metrics.
func (s *Server) handleComparator(w http.ResponseWriter, r *http.Request) {
	tickers, err := parseTickers(r.URL.Query().Get("tickers"), 2)
	if err != nil {
		writeError(w, err)
		return
	}
	period := queryDefault(r, "period", "1y")

	seriesByTicker, err := s.fetchMany(tickers, period)
	if err != nil {
		writeError(w, err)
		return
	}
	benchmark, err := s.provider.Index(period)
	if err != nil {
		benchmark = nil // metrics fall back to beta=1
	}
	results := compare.Compare(seriesByTicker, benchmark, s.riskFreeRate)

	writeJSON(w, http.StatusOK, map[string]any{
		"metrics": results,
		"period":  period,
		"total":   len(results),
	})
}

// GET /api/b3/correlations?tickers=&period= — pairwise return correlation.
func (s *Server) handleCorrelations(w http.ResponseWriter, r *http.Request) {
	tickers, err := parseTickers(r.URL.Query().Get("tickers"), 2)
	if err != nil {
		writeError(w, err)
		return
	}
	period := queryDefault(r, "period", "6mo")

	seriesByTicker, err := s.fetchMany(tickers, period)
	if err != nil {
		writeError(w, err)
		return
	}
	matrix, err := compare.CorrelationMatrix(seriesByTicker)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"correlations": matrix,
		"period":       period,
	})
}

// GET /api/b3/comparison?tickers=&period= — normalized close curves for
// charting multiple tickers on one axis.
func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	tickers, err := parseTickers(r.URL.Query().Get("tickers"), 2)
	if err != nil {
		writeError(w, err)
		return
	}
	period := queryDefault(r, "period", "1y")

	seriesByTicker, err := s.fetchMany(tickers, period)
	if err != nil {
		writeError(w, err)
		return
	}

	type point struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}
	curves := make(map[string][]point, len(seriesByTicker))
	for ticker, sr := range seriesByTicker {
		base := sr.Bars[0].Close
		if base == 0 {
			continue
		}
		pts := make([]point, sr.Len())
		for i := range sr.Bars {
			pts[i] = point{
				Date:  sr.Bars[i].Date.Format("2006-01-02"),
				Value: (sr.Bars[i].Close/base - 1) * 100,
			}
		}
		curves[ticker] = pts
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"comparison": curves,
		"period":     period,
		"total":      len(curves),
	})
}
