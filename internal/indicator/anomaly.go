package indicator

import (
	"fmt"
	"math"

	"b3vision/internal/model"
	"b3vision/internal/series"
)

// Anomaly severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// Anomaly types.
const (
	AnomalyVolume        = "VOLUME_SPIKE"
	AnomalyGap           = "GAP"
	AnomalyVolatility    = "VOLATILITY"
	AnomalyIntradayRange = "INTRADAY_RANGE"
)

// Anomaly flags one unusual behavior on the latest bar. Multiple anomalies
// may fire simultaneously; none are mutually exclusive.
type Anomaly struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// DetectAnomalies inspects the latest bar against the trailing 20-bar
// context (excluding the latest bar itself for the volume and volatility
// baselines). Fewer than 21 bars yields no anomalies.
func DetectAnomalies(s *model.Series) []Anomaly {
	anomalies := []Anomaly{}
	n := s.Len()
	if n < 21 {
		return anomalies
	}
	last := s.Last()

	// baseline volume: 20 bars ending at the prior bar
	var volSum float64
	for i := n - 21; i < n-1; i++ {
		volSum += float64(s.Bars[i].Volume)
	}
	avgVolume := volSum / 20
	if float64(last.Volume) > avgVolume*3 {
		anomalies = append(anomalies, Anomaly{
			Type:     AnomalyVolume,
			Message:  fmt.Sprintf("Volume 3x above average! (%.1fM vs %.1fM)", float64(last.Volume)/1e6, avgVolume/1e6),
			Severity: SeverityHigh,
		})
	}

	prevClose := s.Bars[n-2].Close
	if prevClose != 0 {
		gapPct := math.Abs((last.Open-prevClose)/prevClose) * 100
		if gapPct > 5 {
			anomalies = append(anomalies, Anomaly{
				Type:     AnomalyGap,
				Message:  fmt.Sprintf("Opening gap of %.1f%%!", gapPct),
				Severity: SeverityHigh,
			})
		}
	}

	// baseline volatility: rolling stdev of returns ending at the prior bar
	returns := series.PctChange(s.Closes())
	baseline := rollingStdAt(returns, n-2, 20)
	if baseline.OK && returns[n-1].OK && math.Abs(returns[n-1].Val) > baseline.Val*3 {
		anomalies = append(anomalies, Anomaly{
			Type:     AnomalyVolatility,
			Message:  "Volatility 3x above normal!",
			Severity: SeverityMedium,
		})
	}

	if last.Low != 0 {
		intraday := (last.High - last.Low) / last.Low * 100
		if intraday > 10 {
			anomalies = append(anomalies, Anomaly{
				Type:     AnomalyIntradayRange,
				Message:  fmt.Sprintf("Intraday range of %.1f%%!", intraday),
				Severity: SeverityMedium,
			})
		}
	}

	return anomalies
}

// rollingStdAt is the sample stdev of the w column values ending at index
// i, undefined if any member is undefined.
func rollingStdAt(col series.Column, i, w int) series.Float {
	if i-w+1 < 0 {
		return series.Float{}
	}
	var sum float64
	for j := i - w + 1; j <= i; j++ {
		if !col[j].OK {
			return series.Float{}
		}
		sum += col[j].Val
	}
	mean := sum / float64(w)
	var sq float64
	for j := i - w + 1; j <= i; j++ {
		d := col[j].Val - mean
		sq += d * d
	}
	return series.F(math.Sqrt(sq / float64(w-1)))
}
