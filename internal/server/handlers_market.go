package server

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"b3vision/internal/indicator"
	"b3vision/internal/markethours"
	"b3vision/internal/model"
	"b3vision/internal/series"
)

func pathSuffix(r *http.Request, prefix string) string {
	return strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
}

func queryDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}

// fetchSeries loads a ticker's series, converting an empty result into
// ErrNotFound for single-ticker endpoints.
func (s *Server) fetchSeries(ticker, period string) (*model.Series, error) {
	s.metrics.ProviderFetches.Inc()
	sr, err := s.provider.Series(ticker, period)
	if err != nil {
		return nil, err
	}
	if sr.Empty() {
		return nil, fmt.Errorf("no data for %s: %w", ticker, model.ErrNotFound)
	}
	return sr, nil
}

// barRow is one response row: raw OHLCV plus the per-bar indicator
// columns. Undefined indicator values serialize as null.
type barRow struct {
	Date       string       `json:"date"`
	Open       float64      `json:"open"`
	High       float64      `json:"high"`
	Low        float64      `json:"low"`
	Close      float64      `json:"close"`
	Volume     int64        `json:"volume"`
	RSI        series.Float `json:"rsi"`
	SMA20      series.Float `json:"sma_20"`
	SMA50      series.Float `json:"sma_50"`
	SMA200     series.Float `json:"sma_200"`
	MACD       series.Float `json:"macd"`
	Signal     series.Float `json:"macd_signal"`
	BBUpper    series.Float `json:"bb_upper"`
	BBMiddle   series.Float `json:"bb_middle"`
	BBLower    series.Float `json:"bb_lower"`
	Volatility series.Float `json:"volatility"`
}

// GET /api/b3/stocks — quote snapshots for the main tickers.
func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	body, err := s.cached("stocks_main", 3*time.Minute, func() (any, error) {
		tickers := s.provider.Tickers()
		if len(tickers) > 15 {
			tickers = tickers[:15]
		}
		quotes := make([]*model.QuoteInfo, 0, len(tickers))
		for _, t := range tickers {
			q, err := s.provider.Quote(t)
			if err != nil {
				continue // per-item skip, never abort the batch
			}
			quotes = append(quotes, q)
		}
		return map[string]any{
			"stocks":    quotes,
			"total":     len(quotes),
			"market":    "B3",
			"timestamp": time.Now().Format(time.RFC3339),
		}, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, body)
}

// GET /api/b3/stock/{ticker}?period= — full history with indicator columns.
func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	ticker := pathSuffix(r, "/api/b3/stock/")
	period := queryDefault(r, "period", "1y")

	sr, err := s.fetchSeries(ticker, period)
	if err != nil {
		writeError(w, err)
		return
	}
	start := time.Now()
	set := indicator.Compute(sr)
	s.metrics.IndicatorDur.Observe(time.Since(start).Seconds())

	quote, err := s.provider.Quote(ticker)
	if err != nil {
		quote = &model.QuoteInfo{Ticker: ticker, Name: ticker}
	}

	rows := make([]barRow, sr.Len())
	for i := range sr.Bars {
		bar := &sr.Bars[i]
		rows[i] = barRow{
			Date:       bar.Date.Format("2006-01-02"),
			Open:       bar.Open,
			High:       bar.High,
			Low:        bar.Low,
			Close:      bar.Close,
			Volume:     bar.Volume,
			RSI:        set.RSI[i],
			SMA20:      set.SMA20[i],
			SMA50:      set.SMA50[i],
			SMA200:     set.SMA200[i],
			MACD:       set.MACD[i],
			Signal:     set.Signal[i],
			BBUpper:    set.BBUpper[i],
			BBMiddle:   set.BBMiddle[i],
			BBLower:    set.BBLower[i],
			Volatility: set.Volatility[i],
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ticker": quote.Ticker,
		"info":   quote,
		"bars":   rows,
		"period": period,
		"total":  len(rows),
	})
}

// GET /api/b3/index?period= — benchmark index series with changes.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	period := queryDefault(r, "period", "1y")
	body, err := s.cached("index_"+period, 5*time.Minute, func() (any, error) {
		sr, err := s.provider.Index(period)
		if err != nil {
			return nil, err
		}
		if sr.Empty() {
			return nil, fmt.Errorf("index data unavailable: %w", model.ErrNotFound)
		}
		type point struct {
			Date   string  `json:"date"`
			Close  float64 `json:"close"`
			Volume int64   `json:"volume"`
		}
		points := make([]point, sr.Len())
		for i := range sr.Bars {
			points[i] = point{sr.Bars[i].Date.Format("2006-01-02"), sr.Bars[i].Close, sr.Bars[i].Volume}
		}
		dayChange, periodChange := 0.0, 0.0
		if sr.Len() >= 2 {
			dayChange = (sr.Last().Close/sr.Bars[sr.Len()-2].Close - 1) * 100
			periodChange = (sr.Last().Close/sr.Bars[0].Close - 1) * 100
		}
		return map[string]any{
			"index":         "IBOVESPA",
			"points":        points,
			"day_change":    dayChange,
			"period_change": periodChange,
			"period":        period,
			"market_open":   markethours.IsOpen(time.Now()),
		}, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, body)
}

// GET /api/b3/sectors — mean day change of up to 3 tickers per sector.
func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	body, err := s.cached("sectors", 5*time.Minute, func() (any, error) {
		type sectorPerf struct {
			Sector    string  `json:"sector"`
			ChangePct float64 `json:"change_pct"`
		}
		var perfs []sectorPerf
		for sector, tickers := range s.provider.Sectors() {
			if len(tickers) > 3 {
				tickers = tickers[:3]
			}
			var sum float64
			var n int
			for _, t := range tickers {
				q, err := s.provider.Quote(t)
				if err != nil {
					continue
				}
				sum += q.DayChangePct
				n++
			}
			if n > 0 {
				perfs = append(perfs, sectorPerf{Sector: sector, ChangePct: sum / float64(n)})
			}
		}
		sort.Slice(perfs, func(i, j int) bool { return perfs[i].ChangePct > perfs[j].ChangePct })
		return map[string]any{
			"sectors":   perfs,
			"total":     len(perfs),
			"timestamp": time.Now().Format(time.RFC3339),
		}, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, body)
}

// GET /api/b3/ranking?type=change|volume — top movers or volume leaders.
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	kind := queryDefault(r, "type", "change")
	if kind != "change" && kind != "volume" {
		writeError(w, fmt.Errorf("ranking type must be change or volume: %w", model.ErrInvalidArgument))
		return
	}
	body, err := s.cached("ranking_"+kind, 2*time.Minute, func() (any, error) {
		quotes := make([]*model.QuoteInfo, 0, len(s.provider.Tickers()))
		for _, t := range s.provider.Tickers() {
			q, err := s.provider.Quote(t)
			if err != nil {
				continue
			}
			quotes = append(quotes, q)
		}
		const limit = 20
		var ranked []*model.QuoteInfo
		if kind == "volume" {
			sort.Slice(quotes, func(i, j int) bool { return quotes[i].Volume > quotes[j].Volume })
			ranked = quotes
			if len(ranked) > limit {
				ranked = ranked[:limit]
			}
		} else {
			// half biggest gainers, then half biggest losers
			sort.Slice(quotes, func(i, j int) bool { return quotes[i].DayChangePct > quotes[j].DayChangePct })
			half := limit / 2
			if half > len(quotes)/2 {
				half = len(quotes) / 2
			}
			gainers := quotes[:half]
			losers := make([]*model.QuoteInfo, half)
			for i := 0; i < half; i++ {
				losers[i] = quotes[len(quotes)-1-i]
			}
			ranked = append(append([]*model.QuoteInfo{}, gainers...), losers...)
		}
		return map[string]any{
			"ranking":   ranked,
			"type":      kind,
			"total":     len(ranked),
			"timestamp": time.Now().Format(time.RFC3339),
		}, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, body)
}
