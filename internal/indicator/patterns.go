package indicator

import (
	"math"

	"b3vision/internal/model"
)

// Patterns holds per-bar candle pattern flags, index-aligned with the
// input bars.
type Patterns struct {
	Doji             []bool `json:"doji"`
	Hammer           []bool `json:"hammer"`
	BullishEngulfing []bool `json:"bullish_engulfing"`
	BearishEngulfing []bool `json:"bearish_engulfing"`
}

// DetectPatterns flags classic single- and two-candle patterns per bar.
func DetectPatterns(s *model.Series) *Patterns {
	n := s.Len()
	p := &Patterns{
		Doji:             make([]bool, n),
		Hammer:           make([]bool, n),
		BullishEngulfing: make([]bool, n),
		BearishEngulfing: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		bar := &s.Bars[i]
		body := math.Abs(bar.Close - bar.Open)
		rng := bar.High - bar.Low

		// Doji: tiny body relative to the full range
		if rng > 0 && body/rng < 0.1 {
			p.Doji[i] = true
		}

		// Hammer: long lower shadow, short upper shadow, green body
		lowerShadow := math.Min(bar.Open, bar.Close) - bar.Low
		upperShadow := bar.High - math.Max(bar.Open, bar.Close)
		if lowerShadow > 2*body && upperShadow < 0.3*body && bar.Close > bar.Open {
			p.Hammer[i] = true
		}

		if i == 0 {
			continue
		}
		prev := &s.Bars[i-1]
		prevRed := prev.Close < prev.Open
		prevGreen := prev.Close > prev.Open
		green := bar.Close > bar.Open
		red := bar.Close < bar.Open

		// Engulfing: prior opposite-colored body fully inside the current body
		if prevRed && green && bar.Open < prev.Close && bar.Close > prev.Open {
			p.BullishEngulfing[i] = true
		}
		if prevGreen && red && bar.Open > prev.Close && bar.Close < prev.Open {
			p.BearishEngulfing[i] = true
		}
	}
	return p
}
