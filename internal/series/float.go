// Package series provides the numeric primitives all indicators build on:
// an undefined-aware float type, rolling window statistics, exponential
// smoothing, shift/diff and cumulative sums.
//
// Windowed computations are right-aligned: position i summarizes the window
// ending at i. Positions with insufficient history are explicitly undefined
// rather than zero, and that undefined-ness propagates to every downstream
// consumer.
package series

import "encoding/json"

// Float is a float64 that may be undefined. Windowed indicators are
// undefined until enough history exists; the zero value is undefined.
type Float struct {
	Val float64
	OK  bool
}

// F returns a defined Float.
func F(v float64) Float { return Float{Val: v, OK: true} }

// Or returns the value, or fallback when undefined.
func (f Float) Or(fallback float64) float64 {
	if f.OK {
		return f.Val
	}
	return fallback
}

// MarshalJSON encodes undefined values as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.OK {
		return []byte("null"), nil
	}
	return json.Marshal(f.Val)
}

// UnmarshalJSON decodes null as undefined.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float{}
		return nil
	}
	f.OK = true
	return json.Unmarshal(data, &f.Val)
}

// Column is a derived per-bar series aligned with the input bars.
type Column []Float

// Last returns the final value of the column, undefined when empty.
func (c Column) Last() Float {
	if len(c) == 0 {
		return Float{}
	}
	return c[len(c)-1]
}
