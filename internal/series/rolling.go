package series

import "math"

// RollingMean computes the simple mean over a trailing window of n values.
// Positions before the window fills are undefined.
func RollingMean(values []float64, n int) Column {
	out := make(Column, len(values))
	if n <= 0 || len(values) < n {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= n {
			sum -= values[i-n]
		}
		if i >= n-1 {
			out[i] = F(sum / float64(n))
		}
	}
	return out
}

// RollingStd computes the sample standard deviation (n-1 denominator) over
// a trailing window of n values.
func RollingStd(values []float64, n int) Column {
	out := make(Column, len(values))
	if n < 2 || len(values) < n {
		return out
	}
	for i := n - 1; i < len(values); i++ {
		window := values[i-n+1 : i+1]
		var sum float64
		for _, v := range window {
			sum += v
		}
		mean := sum / float64(n)
		var sq float64
		for _, v := range window {
			d := v - mean
			sq += d * d
		}
		out[i] = F(math.Sqrt(sq / float64(n-1)))
	}
	return out
}

// RollingSum computes the sum over a trailing window of n values from an
// already-shifted column; undefined inputs inside the window leave the
// position undefined.
func RollingSum(values Column, n int) Column {
	out := make(Column, len(values))
	if n <= 0 || len(values) < n {
		return out
	}
	for i := n - 1; i < len(values); i++ {
		var sum float64
		ok := true
		for j := i - n + 1; j <= i; j++ {
			if !values[j].OK {
				ok = false
				break
			}
			sum += values[j].Val
		}
		if ok {
			out[i] = F(sum)
		}
	}
	return out
}

// RollingMeanCol is RollingMean over a column with possibly-undefined
// entries; a window containing any undefined entry is undefined.
func RollingMeanCol(values Column, n int) Column {
	sums := RollingSum(values, n)
	out := make(Column, len(values))
	for i, s := range sums {
		if s.OK {
			out[i] = F(s.Val / float64(n))
		}
	}
	return out
}

// EMA computes the exponential moving average with alpha = 2/(n+1),
// seeded with the first value. Every position is defined.
func EMA(values []float64, n int) Column {
	out := make(Column, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(n+1)
	ema := values[0]
	out[0] = F(ema)
	for i := 1; i < len(values); i++ {
		ema = values[i]*alpha + ema*(1-alpha)
		out[i] = F(ema)
	}
	return out
}

// Shift returns the column of values n positions earlier; the first n
// positions are undefined.
func Shift(values []float64, n int) Column {
	out := make(Column, len(values))
	for i := n; i < len(values); i++ {
		out[i] = F(values[i-n])
	}
	return out
}

// Diff returns values[i] - values[i-n]; the first n positions are undefined.
func Diff(values []float64, n int) Column {
	out := make(Column, len(values))
	for i := n; i < len(values); i++ {
		out[i] = F(values[i] - values[i-n])
	}
	return out
}

// PctChange returns fractional change vs the prior value; the first
// position is undefined, a zero prior leaves the position undefined.
func PctChange(values []float64) Column {
	out := make(Column, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		out[i] = F(values[i]/values[i-1] - 1)
	}
	return out
}

// CumSum returns the running total of values.
func CumSum(values []float64) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		out[i] = sum
	}
	return out
}
