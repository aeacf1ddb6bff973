package indicator

import (
	"b3vision/internal/model"
	"b3vision/internal/series"
)

// VWAP is the volume-weighted average price, cumulative from the series
// start (not a trailing window): Σ(typical·volume) / Σ(volume).
func VWAP(s *model.Series) series.Column {
	out := make(series.Column, s.Len())
	var pvSum, volSum float64
	for i := range s.Bars {
		bar := &s.Bars[i]
		pvSum += bar.TypicalPrice() * float64(bar.Volume)
		volSum += float64(bar.Volume)
		if volSum == 0 {
			continue
		}
		out[i] = series.F(pvSum / volSum)
	}
	return out
}

// OBV is cumulative signed volume: add on a rising close, subtract on a
// falling close, hold on a flat one. The first bar seeds with its own
// volume.
func OBV(s *model.Series) series.Column {
	out := make(series.Column, s.Len())
	if s.Empty() {
		return out
	}
	obv := float64(s.Bars[0].Volume)
	out[0] = series.F(obv)
	for i := 1; i < s.Len(); i++ {
		switch {
		case s.Bars[i].Close > s.Bars[i-1].Close:
			obv += float64(s.Bars[i].Volume)
		case s.Bars[i].Close < s.Bars[i-1].Close:
			obv -= float64(s.Bars[i].Volume)
		}
		out[i] = series.F(obv)
	}
	return out
}

// ForceIndex is the EMA(n) of (close − prior close) × volume. The first
// bar has no prior close; the EMA seeds at the second bar.
func ForceIndex(s *model.Series, n int) series.Column {
	out := make(series.Column, s.Len())
	if s.Len() < 2 {
		return out
	}
	force := make([]float64, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		force = append(force, (s.Bars[i].Close-s.Bars[i-1].Close)*float64(s.Bars[i].Volume))
	}
	ema := series.EMA(force, n)
	for i := 1; i < s.Len(); i++ {
		out[i] = ema[i-1]
	}
	return out
}

// AccumulationDistribution is the cumulative sum of close-location-value ×
// volume, with CLV = ((C−L)−(H−C))/(H−L), defined as 0 when H == L.
func AccumulationDistribution(s *model.Series) series.Column {
	out := make(series.Column, s.Len())
	var ad float64
	for i := range s.Bars {
		bar := &s.Bars[i]
		clv := 0.0
		if hl := bar.High - bar.Low; hl != 0 {
			clv = ((bar.Close - bar.Low) - (bar.High - bar.Close)) / hl
		}
		ad += clv * float64(bar.Volume)
		out[i] = series.F(ad)
	}
	return out
}
