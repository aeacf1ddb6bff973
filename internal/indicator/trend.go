package indicator

import (
	"math"

	"b3vision/internal/series"
)

// MACD returns the MACD line (EMA12 − EMA26), the signal line (EMA9 of
// MACD) and the histogram (MACD − signal). Every position is defined
// because the EMAs seed with the first value.
func MACD(closes []float64) (macd, signal, histogram series.Column) {
	ema12 := series.EMA(closes, 12)
	ema26 := series.EMA(closes, 26)

	macd = make(series.Column, len(closes))
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = ema12[i].Val - ema26[i].Val
		macd[i] = series.F(line[i])
	}

	signal = series.EMA(line, 9)
	histogram = make(series.Column, len(closes))
	for i := range closes {
		histogram[i] = series.F(macd[i].Val - signal[i].Val)
	}
	return macd, signal, histogram
}

// Bollinger returns the upper, middle and lower bands: SMA(n) ± k·std(n).
func Bollinger(closes []float64, n int, k float64) (upper, middle, lower series.Column) {
	middle = series.RollingMean(closes, n)
	std := series.RollingStd(closes, n)

	upper = make(series.Column, len(closes))
	lower = make(series.Column, len(closes))
	for i := range closes {
		if middle[i].OK && std[i].OK {
			upper[i] = series.F(middle[i].Val + k*std[i].Val)
			lower[i] = series.F(middle[i].Val - k*std[i].Val)
		}
	}
	return upper, middle, lower
}

// Volatility is the rolling sample stdev of daily percentage returns,
// annualized by √252 and expressed as a percentage.
func Volatility(closes []float64, n int) series.Column {
	returns := series.PctChange(closes)
	out := make(series.Column, len(closes))
	if len(closes) <= n {
		return out
	}
	// the return column starts at index 1, so the first defined window
	// ends at index n
	for i := n; i < len(closes); i++ {
		var sum float64
		ok := true
		for j := i - n + 1; j <= i; j++ {
			if !returns[j].OK {
				ok = false
				break
			}
			sum += returns[j].Val
		}
		if !ok {
			continue
		}
		mean := sum / float64(n)
		var sq float64
		for j := i - n + 1; j <= i; j++ {
			d := returns[j].Val - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(n-1))
		out[i] = series.F(std * math.Sqrt(TradingDays) * 100)
	}
	return out
}
