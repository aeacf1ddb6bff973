// Package indicator provides technical indicator calculations over OHLCV
// series.
//
// All computations are pure batch functions: input is an immutable
// model.Series, output is a fresh Set of derived columns (or a small record
// for single-shot indicators). Bars without enough history carry undefined
// values, never zeros or NaN — see the series.Float contract. An empty
// input series yields an empty Set for every indicator.
package indicator

import (
	"b3vision/internal/model"
	"b3vision/internal/series"
)

// Standard periods, matching the common charting defaults.
const (
	RSIPeriod        = 14
	MFIPeriod        = 14
	ADXPeriod        = 14
	ForceIndexPeriod = 13
	ROCPeriod        = 12
	MomentumPeriod   = 10
	BollingerPeriod  = 20
	VolatilityWindow = 20
	VolumeSMAWindow  = 20
	TradingDays      = 252
)

// Set holds every per-bar derived column for a series, index-aligned with
// the input bars.
type Set struct {
	RSI        series.Column `json:"rsi"`
	SMA20      series.Column `json:"sma_20"`
	SMA50      series.Column `json:"sma_50"`
	SMA200     series.Column `json:"sma_200"`
	MACD       series.Column `json:"macd"`
	Signal     series.Column `json:"signal"`
	Histogram  series.Column `json:"histogram"`
	BBUpper    series.Column `json:"bb_upper"`
	BBMiddle   series.Column `json:"bb_middle"`
	BBLower    series.Column `json:"bb_lower"`
	Volatility series.Column `json:"volatility"`
	VolumeSMA  series.Column `json:"volume_sma"`
	VWAP       series.Column `json:"vwap"`
	OBV        series.Column `json:"obv"`
	MFI        series.Column `json:"mfi"`
	ForceIndex series.Column `json:"force_index"`
	AD         series.Column `json:"ad"`
	ROC        series.Column `json:"roc"`
	Momentum   series.Column `json:"momentum"`
	ADX        series.Column `json:"adx"`
}

// Compute derives the full indicator set for a series. Safe for concurrent
// use: it allocates fresh outputs and performs no I/O.
func Compute(s *model.Series) *Set {
	set := &Set{}
	if s.Empty() {
		return set
	}
	closes := s.Closes()

	set.RSI = RSI(closes, RSIPeriod)
	set.SMA20 = series.RollingMean(closes, 20)
	set.SMA50 = series.RollingMean(closes, 50)
	set.SMA200 = series.RollingMean(closes, 200)
	set.MACD, set.Signal, set.Histogram = MACD(closes)
	set.BBUpper, set.BBMiddle, set.BBLower = Bollinger(closes, BollingerPeriod, 2)
	set.Volatility = Volatility(closes, VolatilityWindow)
	set.VolumeSMA = volumeSMA(s, VolumeSMAWindow)
	set.VWAP = VWAP(s)
	set.OBV = OBV(s)
	set.MFI = MFI(s, MFIPeriod)
	set.ForceIndex = ForceIndex(s, ForceIndexPeriod)
	set.AD = AccumulationDistribution(s)
	set.ROC = ROC(closes, ROCPeriod)
	set.Momentum = Momentum(closes, MomentumPeriod)
	set.ADX = ADX(s, ADXPeriod)
	return set
}

func volumeSMA(s *model.Series, n int) series.Column {
	vols := make([]float64, s.Len())
	for i := range s.Bars {
		vols[i] = float64(s.Bars[i].Volume)
	}
	return series.RollingMean(vols, n)
}
