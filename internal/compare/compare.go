// Package compare computes per-ticker risk/return metrics across multiple
// series for ranking and comparison. Every scalar it produces is finite:
// degenerate inputs yield 0.0 (or 1.0 for beta), never NaN or Inf, because
// downstream ranking sorts on these fields.
package compare

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"b3vision/internal/model"
)

// DefaultRiskFreeRate is the annualized risk-free rate used for Sharpe,
// 10% by local-market convention.
const DefaultRiskFreeRate = 0.1

// MinBars is the minimum series length for a ticker to be compared;
// shorter tickers are skipped, not errored.
const MinBars = 20

// Metrics is the risk/return record for one ticker.
type Metrics struct {
	Ticker       string  `json:"ticker"`
	TotalReturn  float64 `json:"total_return"`
	Volatility   float64 `json:"volatility"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	Beta         float64 `json:"beta"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	CurrentPrice float64 `json:"current_price"`
}

// Sharpe computes the annualized Sharpe ratio from daily fractional
// returns. Returns exactly 0.0 whenever fewer than 2 observations exist,
// annualized volatility is zero, or the result is not finite.
func Sharpe(returns []float64, riskFreeRate float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	meanAnnual := stat.Mean(returns, nil) * 252
	vol := stat.StdDev(returns, nil) * math.Sqrt(252)
	if vol <= 0 || math.IsNaN(vol) {
		return 0
	}
	sharpe := (meanAnnual - riskFreeRate) / vol
	if math.IsNaN(sharpe) || math.IsInf(sharpe, 0) {
		return 0
	}
	return sharpe
}

// Beta computes covariance(asset, benchmark) / variance(benchmark) over
// the overlapping tail of the two return slices. Defaults to 1.0 when the
// benchmark variance is zero or the overlap is too short.
func Beta(asset, benchmark []float64) float64 {
	n := len(asset)
	if len(benchmark) < n {
		n = len(benchmark)
	}
	if n < 2 {
		return 1
	}
	a := asset[len(asset)-n:]
	b := benchmark[len(benchmark)-n:]
	variance := stat.Variance(b, nil)
	if variance <= 0 || math.IsNaN(variance) {
		return 1
	}
	beta := stat.Covariance(a, b, nil) / variance
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 1
	}
	return beta
}

// MaxDrawdown is the largest peak-to-trough decline in closes, as a
// percentage of the running peak.
func MaxDrawdown(closes []float64) float64 {
	var peak, maxDD float64
	for _, c := range closes {
		if c > peak {
			peak = c
		}
		if peak > 0 {
			if dd := (peak - c) / peak * 100; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// AnnualizedVolatility is stdev(daily returns) × √252 × 100.
func AnnualizedVolatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	vol := stat.StdDev(returns, nil) * math.Sqrt(252) * 100
	if math.IsNaN(vol) || math.IsInf(vol, 0) {
		return 0
	}
	return vol
}

// Compare computes metrics for each ticker's series against a benchmark.
// Tickers with fewer than MinBars bars are skipped; any per-ticker failure
// substitutes an all-zero record so partial results are always returned.
// Output is sorted by ticker for deterministic responses.
func Compare(seriesByTicker map[string]*model.Series, benchmark *model.Series, riskFreeRate float64) []Metrics {
	var benchReturns []float64
	if benchmark != nil {
		benchReturns = benchmark.Returns()
	}

	tickers := make([]string, 0, len(seriesByTicker))
	for ticker := range seriesByTicker {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	results := make([]Metrics, 0, len(tickers))
	for _, ticker := range tickers {
		s := seriesByTicker[ticker]
		if s == nil || s.Len() < MinBars {
			continue
		}
		results = append(results, tickerMetrics(ticker, s, benchReturns, riskFreeRate))
	}
	return results
}

func tickerMetrics(ticker string, s *model.Series, benchReturns []float64, riskFreeRate float64) Metrics {
	m := Metrics{Ticker: ticker, Beta: 1}

	closes := s.Closes()
	returns := s.Returns()

	first, last := closes[0], closes[len(closes)-1]
	if first != 0 {
		m.TotalReturn = safe((last/first - 1) * 100)
	}
	m.Volatility = AnnualizedVolatility(returns)
	m.SharpeRatio = Sharpe(returns, riskFreeRate)
	if len(benchReturns) > 0 {
		m.Beta = Beta(returns, benchReturns)
	}
	m.MaxDrawdown = safe(MaxDrawdown(closes))
	m.CurrentPrice = safe(last)
	return m
}

func safe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
