// Package score combines a fixed set of indicator signals into a single
// 0–100 technical score and a discrete recommendation.
package score

import (
	"b3vision/internal/indicator"
	"b3vision/internal/model"
)

// Recommendation bands, checked top-down, inclusive on the lower threshold.
const (
	StrongBuy  = "STRONG_BUY"
	Buy        = "BUY"
	Neutral    = "NEUTRAL"
	Sell       = "SELL"
	StrongSell = "STRONG_SELL"
)

// Result is the composite technical score for the latest bar.
type Result struct {
	Score          float64  `json:"score"`
	Recommendation string   `json:"recommendation"`
	Signals        []string `json:"signals"`
}

// Technical scores the last bar of a series with indicators already
// computed. Four independent signals each contribute one of
// {0, 25, 50, 75, 100}; the final score is their unweighted mean.
// Undefined indicator values degrade to neutral defaults, never panic.
// Returns nil for an empty series.
func Technical(s *model.Series, set *indicator.Set) *Result {
	if s.Empty() {
		return nil
	}
	last := s.Last()
	var scores []float64
	var signals []string

	// RSI
	rsi := set.RSI.Last().Or(50)
	switch {
	case rsi < 30:
		scores = append(scores, 100)
		signals = append(signals, "RSI oversold (BUY)")
	case rsi > 70:
		scores = append(scores, 0)
		signals = append(signals, "RSI overbought (SELL)")
	default:
		scores = append(scores, 50)
		signals = append(signals, "RSI neutral")
	}

	// MACD vs signal line
	if set.MACD.Last().Or(0) > set.Signal.Last().Or(0) {
		scores = append(scores, 75)
		signals = append(signals, "MACD bullish (BUY)")
	} else {
		scores = append(scores, 25)
		signals = append(signals, "MACD bearish (SELL)")
	}

	// Moving-average trend; missing SMAs default to the close (neutral)
	sma20 := set.SMA20.Last().Or(last.Close)
	sma50 := set.SMA50.Last().Or(last.Close)
	switch {
	case last.Close > sma20 && sma20 > sma50:
		scores = append(scores, 100)
		signals = append(signals, "Uptrend")
	case last.Close < sma20 && sma20 < sma50:
		scores = append(scores, 0)
		signals = append(signals, "Downtrend")
	default:
		scores = append(scores, 50)
		signals = append(signals, "Mixed trend")
	}

	// Volume vs 20-bar average
	avgVolume := set.VolumeSMA.Last()
	switch {
	case avgVolume.OK && float64(last.Volume) > avgVolume.Val*1.5:
		scores = append(scores, 75)
		signals = append(signals, "High volume")
	case avgVolume.OK && float64(last.Volume) < avgVolume.Val*0.5:
		scores = append(scores, 25)
		signals = append(signals, "Low volume")
	default:
		scores = append(scores, 50)
		signals = append(signals, "Normal volume")
	}

	var total float64
	for _, sc := range scores {
		total += sc
	}
	final := total / float64(len(scores))

	return &Result{
		Score:          final,
		Recommendation: recommend(final),
		Signals:        signals,
	}
}

func recommend(score float64) string {
	switch {
	case score >= 75:
		return StrongBuy
	case score >= 60:
		return Buy
	case score >= 40:
		return Neutral
	case score >= 25:
		return Sell
	default:
		return StrongSell
	}
}
