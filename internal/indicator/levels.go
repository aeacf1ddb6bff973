package indicator

import (
	"math"
	"sort"

	"b3vision/internal/model"
)

// PivotPoints are the classic floor-trader levels from the last bar.
type PivotPoints struct {
	Pivot float64 `json:"pivot"`
	R1    float64 `json:"r1"`
	R2    float64 `json:"r2"`
	R3    float64 `json:"r3"`
	S1    float64 `json:"s1"`
	S2    float64 `json:"s2"`
	S3    float64 `json:"s3"`
}

// Pivots computes classic pivot points from the last bar's H/L/C.
// Returns nil for an empty series.
func Pivots(s *model.Series) *PivotPoints {
	if s.Empty() {
		return nil
	}
	last := s.Last()
	p := (last.High + last.Low + last.Close) / 3
	return &PivotPoints{
		Pivot: p,
		R1:    2*p - last.Low,
		R2:    p + (last.High - last.Low),
		R3:    last.High + 2*(p-last.Low),
		S1:    2*p - last.High,
		S2:    p - (last.High - last.Low),
		S3:    last.Low - 2*(last.High-p),
	}
}

// CamarillaLevels are intraday reversal levels from the last bar, using the
// standard 1.1 multiplier scaled by (H−L)/{12,6,4,2}.
type CamarillaLevels struct {
	R4 float64 `json:"r4"`
	R3 float64 `json:"r3"`
	R2 float64 `json:"r2"`
	R1 float64 `json:"r1"`
	PP float64 `json:"pp"`
	S1 float64 `json:"s1"`
	S2 float64 `json:"s2"`
	S3 float64 `json:"s3"`
	S4 float64 `json:"s4"`
}

// Camarilla computes Camarilla levels from the last bar. Returns nil for an
// empty series.
func Camarilla(s *model.Series) *CamarillaLevels {
	if s.Empty() {
		return nil
	}
	last := s.Last()
	rng := (last.High - last.Low) * 1.1
	return &CamarillaLevels{
		R4: last.Close + rng/2,
		R3: last.Close + rng/4,
		R2: last.Close + rng/6,
		R1: last.Close + rng/12,
		PP: (last.High + last.Low + last.Close) / 3,
		S1: last.Close - rng/12,
		S2: last.Close - rng/6,
		S3: last.Close - rng/4,
		S4: last.Close - rng/2,
	}
}

// FibLevels holds Fibonacci retracements/extensions over the requested
// window plus the Camarilla levels the same endpoint reports.
type FibLevels struct {
	Retracements map[string]float64 `json:"retracements"`
	Extensions   map[string]float64 `json:"extensions"`
	Camarilla    *CamarillaLevels   `json:"camarilla"`
	MaxPrice     float64            `json:"max_price"`
	MinPrice     float64            `json:"min_price"`
	CurrentPrice float64            `json:"current_price"`
}

// Fibonacci computes retracement and extension levels from the max/min
// close over the whole window. Extensions project above the max. Returns
// nil when fewer than 2 bars exist.
func Fibonacci(s *model.Series) *FibLevels {
	if s.Len() < 2 {
		return nil
	}
	maxClose, minClose := s.Bars[0].Close, s.Bars[0].Close
	for i := 1; i < s.Len(); i++ {
		c := s.Bars[i].Close
		if c > maxClose {
			maxClose = c
		}
		if c < minClose {
			minClose = c
		}
	}
	diff := maxClose - minClose
	return &FibLevels{
		Retracements: map[string]float64{
			"0.0%":   maxClose,
			"23.6%":  maxClose - diff*0.236,
			"38.2%":  maxClose - diff*0.382,
			"50.0%":  maxClose - diff*0.500,
			"61.8%":  maxClose - diff*0.618,
			"78.6%":  maxClose - diff*0.786,
			"100.0%": minClose,
		},
		Extensions: map[string]float64{
			"161.8%": maxClose + diff*0.618,
			"261.8%": maxClose + diff*1.618,
			"423.6%": maxClose + diff*3.236,
		},
		Camarilla:    Camarilla(s),
		MaxPrice:     maxClose,
		MinPrice:     minClose,
		CurrentPrice: s.Last().Close,
	}
}

// Levels holds detected support and resistance prices, at most 5 each,
// sorted by descending price.
type Levels struct {
	Resistances []float64 `json:"resistances"`
	Supports    []float64 `json:"supports"`
}

// SupportResistance scans for local extremes using a centered window of w
// bars either side: bar i is a resistance candidate when its High equals
// the window max, a support candidate when its Low equals the window min.
// Candidates are rounded to 2 decimals and deduped.
func SupportResistance(s *model.Series, w int) *Levels {
	lv := &Levels{Resistances: []float64{}, Supports: []float64{}}
	if s.Len() <= 2*w {
		return lv
	}
	resSeen := map[float64]bool{}
	supSeen := map[float64]bool{}
	for i := w; i < s.Len()-w; i++ {
		winMax, winMin := s.Bars[i-w].High, s.Bars[i-w].Low
		for j := i - w + 1; j <= i+w; j++ {
			if s.Bars[j].High > winMax {
				winMax = s.Bars[j].High
			}
			if s.Bars[j].Low < winMin {
				winMin = s.Bars[j].Low
			}
		}
		if s.Bars[i].High == winMax {
			if r := round2(s.Bars[i].High); !resSeen[r] {
				resSeen[r] = true
				lv.Resistances = append(lv.Resistances, r)
			}
		}
		if s.Bars[i].Low == winMin {
			if r := round2(s.Bars[i].Low); !supSeen[r] {
				supSeen[r] = true
				lv.Supports = append(lv.Supports, r)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(lv.Resistances)))
	sort.Sort(sort.Reverse(sort.Float64Slice(lv.Supports)))
	if len(lv.Resistances) > 5 {
		lv.Resistances = lv.Resistances[:5]
	}
	if len(lv.Supports) > 5 {
		lv.Supports = lv.Supports[:5]
	}
	return lv
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
