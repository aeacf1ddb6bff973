package indicator

import (
	"math"

	"b3vision/internal/model"
	"b3vision/internal/series"
)

// RSI computes the Relative Strength Index using simple rolling means of
// gains and losses over n bars. A window with zero losses yields exactly
// 100 (RS treated as +∞); a completely flat window is undefined. NaN is
// never produced.
func RSI(closes []float64, n int) series.Column {
	out := make(series.Column, len(closes))
	if len(closes) <= n {
		return out
	}
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}
	// first delta exists at index 1, so the first full window ends at n
	for i := n; i < len(closes); i++ {
		var gain, loss float64
		for j := i - n + 1; j <= i; j++ {
			gain += gains[j]
			loss += losses[j]
		}
		switch {
		case loss == 0 && gain == 0:
			// flat window, no direction
		case loss == 0:
			out[i] = series.F(100)
		default:
			rs := gain / loss
			out[i] = series.F(100 - 100/(1+rs))
		}
	}
	return out
}

// MFI computes the Money Flow Index: RSI weighted by typical-price × volume,
// with flows split by typical-price direction over n bars.
func MFI(s *model.Series, n int) series.Column {
	out := make(series.Column, s.Len())
	if s.Len() <= n {
		return out
	}
	positive := make([]float64, s.Len())
	negative := make([]float64, s.Len())
	prevTP := s.Bars[0].TypicalPrice()
	for i := 1; i < s.Len(); i++ {
		tp := s.Bars[i].TypicalPrice()
		flow := tp * float64(s.Bars[i].Volume)
		if tp > prevTP {
			positive[i] = flow
		} else if tp < prevTP {
			negative[i] = flow
		}
		prevTP = tp
	}
	for i := n; i < s.Len(); i++ {
		var pos, neg float64
		for j := i - n + 1; j <= i; j++ {
			pos += positive[j]
			neg += negative[j]
		}
		switch {
		case neg == 0 && pos == 0:
			// no directional flow in the window
		case neg == 0:
			out[i] = series.F(100)
		default:
			out[i] = series.F(100 - 100/(1+pos/neg))
		}
	}
	return out
}

// ROC is the percentage change vs the close n bars prior.
func ROC(closes []float64, n int) series.Column {
	out := make(series.Column, len(closes))
	for i := n; i < len(closes); i++ {
		prev := closes[i-n]
		if prev == 0 {
			continue
		}
		out[i] = series.F((closes[i] - prev) / prev * 100)
	}
	return out
}

// Momentum is the absolute change vs the close n bars prior.
func Momentum(closes []float64, n int) series.Column {
	return series.Diff(closes, n)
}

// ADX computes the Average Directional Index: +DM/−DM smoothed by ATR(n),
// DX = 100·|+DI − −DI|/(+DI + −DI), ADX = rolling mean(n) of DX.
func ADX(s *model.Series, n int) series.Column {
	out := make(series.Column, s.Len())
	if s.Len() < 2 {
		return out
	}
	plusDM := make(series.Column, s.Len())
	minusDM := make(series.Column, s.Len())
	tr := make(series.Column, s.Len())
	for i := 1; i < s.Len(); i++ {
		cur, prev := s.Bars[i], s.Bars[i-1]
		up := cur.High - prev.High
		down := cur.Low - prev.Low
		if up < 0 {
			up = 0
		}
		if down > 0 {
			down = 0
		}
		plusDM[i] = series.F(up)
		minusDM[i] = series.F(math.Abs(down))

		r := cur.High - cur.Low
		if v := math.Abs(cur.High - prev.Close); v > r {
			r = v
		}
		if v := math.Abs(cur.Low - prev.Close); v > r {
			r = v
		}
		tr[i] = series.F(r)
	}

	atr := series.RollingMeanCol(tr, n)
	plusAvg := series.RollingMeanCol(plusDM, n)
	minusAvg := series.RollingMeanCol(minusDM, n)

	dx := make(series.Column, s.Len())
	for i := range dx {
		if !atr[i].OK || atr[i].Val == 0 || !plusAvg[i].OK || !minusAvg[i].OK {
			continue
		}
		plusDI := 100 * plusAvg[i].Val / atr[i].Val
		minusDI := 100 * minusAvg[i].Val / atr[i].Val
		if plusDI+minusDI == 0 {
			continue
		}
		dx[i] = series.F(100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI))
	}
	return series.RollingMeanCol(dx, n)
}
