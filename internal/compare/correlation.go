package compare

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"b3vision/internal/model"
)

// CorrelationMatrix computes the pairwise Pearson correlation of daily
// returns across tickers. Series are aligned on their overlapping tails.
// Tickers with fewer than 2 bars are skipped; fewer than 2 usable tickers
// is an ErrInvalidArgument.
func CorrelationMatrix(seriesByTicker map[string]*model.Series) (map[string]map[string]float64, error) {
	returns := make(map[string][]float64, len(seriesByTicker))
	tickers := make([]string, 0, len(seriesByTicker))
	for ticker, s := range seriesByTicker {
		if s == nil || s.Len() < 2 {
			continue
		}
		returns[ticker] = s.Returns()
		tickers = append(tickers, ticker)
	}
	if len(tickers) < 2 {
		return nil, fmt.Errorf("correlation needs at least 2 tickers with data: %w", model.ErrInvalidArgument)
	}
	sort.Strings(tickers)

	matrix := make(map[string]map[string]float64, len(tickers))
	for _, a := range tickers {
		matrix[a] = make(map[string]float64, len(tickers))
		for _, b := range tickers {
			if a == b {
				matrix[a][b] = 1
				continue
			}
			matrix[a][b] = correlation(returns[a], returns[b])
		}
	}
	return matrix, nil
}

func correlation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return 0
	}
	c := stat.Correlation(a[len(a)-n:], b[len(b)-n:], nil)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	return c
}
