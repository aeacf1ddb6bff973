package model

import "time"

// Bar represents one daily OHLCV trading session for a single ticker.
// Prices are plain float64 in BRL; weekends and holidays are simply absent.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// TypicalPrice returns (High+Low+Close)/3.
func (b *Bar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}

// Series is an ordered sequence of bars, strictly ascending by date with no
// duplicate dates. Immutable once fetched; indicator computation produces
// parallel derived columns and never mutates the bars.
type Series struct {
	Ticker string `json:"ticker"`
	Bars   []Bar  `json:"bars"`
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.Bars) }

// Empty reports whether the series has no bars. Callers treat an empty
// series as a not-found signal, never an error.
func (s *Series) Empty() bool { return len(s.Bars) == 0 }

// Last returns the most recent bar. Callers must check Empty first.
func (s *Series) Last() Bar { return s.Bars[len(s.Bars)-1] }

// Closes returns the close column as a fresh slice.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i := range s.Bars {
		out[i] = s.Bars[i].Close
	}
	return out
}

// Returns computes daily percentage returns (close-over-close, fractional).
// A series of n bars yields n-1 observations.
func (s *Series) Returns() []float64 {
	if len(s.Bars) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s.Bars)-1)
	for i := 1; i < len(s.Bars); i++ {
		prev := s.Bars[i-1].Close
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, s.Bars[i].Close/prev-1)
	}
	return out
}
