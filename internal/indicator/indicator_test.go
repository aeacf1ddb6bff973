package indicator

import (
	"math"
	"testing"
	"time"

	"b3vision/internal/model"
)

// flatSeries builds a series where every bar derives from its close: high is
// close+1, low is close-1, open equals the prior close.
func flatSeries(closes []float64, volume int64) *model.Series {
	bars := make([]model.Bar, len(closes))
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		bars[i] = model.Bar{
			Date:   day.AddDate(0, 0, i),
			Open:   open,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: volume,
		}
	}
	return &model.Series{Ticker: "TEST4", Bars: bars}
}

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func TestRSI_AllGainsIs100(t *testing.T) {
	closes := ramp(20, 100, 1)
	rsi := RSI(closes, 14)

	for i := 0; i < 14; i++ {
		if rsi[i].OK {
			t.Errorf("expected rsi[%d] undefined before first full window", i)
		}
	}
	last := rsi[19]
	if !last.OK {
		t.Fatalf("expected rsi defined at index 19")
	}
	if last.Val != 100 {
		t.Errorf("expected rsi=100 for monotonic gains, got %.4f", last.Val)
	}
}

func TestRSI_FlatWindowUndefined(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 50
	}
	rsi := RSI(closes, 14)
	for i, v := range rsi {
		if v.OK {
			t.Errorf("expected rsi[%d] undefined for a flat series", i)
		}
	}
}

func TestRSI_Bounded(t *testing.T) {
	closes := []float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18, 17, 19, 18, 20}
	rsi := RSI(closes, 14)
	for i, v := range rsi {
		if !v.OK {
			continue
		}
		if v.Val < 0 || v.Val > 100 {
			t.Errorf("rsi[%d]=%.4f out of [0,100]", i, v.Val)
		}
		if math.IsNaN(v.Val) {
			t.Errorf("rsi[%d] is NaN", i)
		}
	}
}

func TestMACD_Identity(t *testing.T) {
	closes := []float64{10, 11, 13, 12, 14, 16, 15, 17, 18, 20}
	macd, signal, hist := MACD(closes)

	for i := range closes {
		if !macd[i].OK || !signal[i].OK || !hist[i].OK {
			t.Fatalf("expected all macd columns defined at %d", i)
		}
		if d := hist[i].Val - (macd[i].Val - signal[i].Val); math.Abs(d) > 1e-9 {
			t.Errorf("histogram[%d] != macd-signal (diff %.2e)", i, d)
		}
	}
	// equal smoothing periods on the first bar: macd starts at 0
	if math.Abs(macd[0].Val) > 1e-9 {
		t.Errorf("expected macd[0]=0, got %.6f", macd[0].Val)
	}
}

func TestBollinger_Ordering(t *testing.T) {
	closes := ramp(30, 100, 0.5)
	upper, middle, lower := Bollinger(closes, 20, 2)

	if upper[18].OK || middle[18].OK || lower[18].OK {
		t.Errorf("expected bands undefined before the window fills")
	}
	for i := 19; i < len(closes); i++ {
		if !(lower[i].Val < middle[i].Val && middle[i].Val < upper[i].Val) {
			t.Errorf("band ordering violated at %d: %.4f %.4f %.4f",
				i, lower[i].Val, middle[i].Val, upper[i].Val)
		}
		if d := (upper[i].Val + lower[i].Val) / 2; math.Abs(d-middle[i].Val) > 1e-9 {
			t.Errorf("bands not symmetric around middle at %d", i)
		}
	}
}

func TestVolatility_FirstDefinedIndex(t *testing.T) {
	closes := []float64{10, 11, 10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18, 17, 19, 18, 20, 19, 21}
	vol := Volatility(closes, 20)

	if vol[19].OK {
		t.Errorf("expected volatility undefined at index 19 (only 19 returns)")
	}
	if !vol[20].OK {
		t.Errorf("expected volatility defined at index 20")
	}
	if vol[20].Val <= 0 {
		t.Errorf("expected positive volatility, got %.4f", vol[20].Val)
	}
}

func TestOBV(t *testing.T) {
	s := flatSeries([]float64{10, 11, 11, 9}, 100)
	obv := OBV(s)

	want := []float64{100, 200, 200, 100}
	for i, w := range want {
		if !obv[i].OK || obv[i].Val != w {
			t.Errorf("obv[%d]: expected %.0f, got %+v", i, w, obv[i])
		}
	}
}

func TestVWAP_SingleBar(t *testing.T) {
	s := flatSeries([]float64{30}, 500)
	vwap := VWAP(s)
	// single bar: vwap equals its typical price (31+29+30)/3 = 30
	if !vwap[0].OK || math.Abs(vwap[0].Val-30) > 1e-9 {
		t.Errorf("expected vwap=30, got %+v", vwap[0])
	}
}

func TestForceIndex_Offset(t *testing.T) {
	s := flatSeries([]float64{10, 12, 11}, 100)
	fi := ForceIndex(s, 13)

	if fi[0].OK {
		t.Errorf("expected force index undefined on the first bar")
	}
	// first force value is (12-10)*100 = 200, EMA seeds there
	if !fi[1].OK || math.Abs(fi[1].Val-200) > 1e-9 {
		t.Errorf("expected fi[1]=200, got %+v", fi[1])
	}
}

func TestAccumulationDistribution_FlatBarContributesZero(t *testing.T) {
	bars := []model.Bar{
		{High: 10, Low: 10, Close: 10, Open: 10, Volume: 1000},
		{High: 12, Low: 10, Close: 12, Open: 10, Volume: 100},
	}
	s := &model.Series{Ticker: "TEST4", Bars: bars}
	ad := AccumulationDistribution(s)

	if ad[0].Val != 0 {
		t.Errorf("expected ad[0]=0 when high==low, got %.4f", ad[0].Val)
	}
	// second bar closes at the high: clv=1, ad += 100
	if math.Abs(ad[1].Val-100) > 1e-9 {
		t.Errorf("expected ad[1]=100, got %.4f", ad[1].Val)
	}
}

func TestROCAndMomentum(t *testing.T) {
	closes := ramp(15, 100, 1)
	roc := ROC(closes, 12)
	mom := Momentum(closes, 10)

	if roc[11].OK {
		t.Errorf("expected roc undefined before period elapses")
	}
	approx := func(got, want float64, name string) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s: expected %.4f, got %.4f", name, want, got)
		}
	}
	approx(roc[12].Val, 12, "roc[12]")
	approx(mom[10].Val, 10, "momentum[10]")
}

func TestADX_DefinedAfterWarmup(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + 5*math.Sin(float64(i)/4) + float64(i)*0.2
	}
	s := flatSeries(closes, 1000)
	adx := ADX(s, 14)

	if adx[len(adx)-1].OK {
		v := adx[len(adx)-1].Val
		if v < 0 || v > 100 {
			t.Errorf("adx out of [0,100]: %.4f", v)
		}
	} else {
		t.Errorf("expected adx defined after warmup on a 60-bar series")
	}
	// two stacked windows of 14 need at least 28 bars of history
	for i := 0; i < 27; i++ {
		if adx[i].OK {
			t.Errorf("expected adx[%d] undefined during warmup", i)
		}
	}
}

func TestCompute_EmptySeries(t *testing.T) {
	set := Compute(&model.Series{Ticker: "TEST4"})
	if len(set.RSI) != 0 || len(set.MACD) != 0 || len(set.VWAP) != 0 {
		t.Errorf("expected empty columns for an empty series")
	}
}

func TestCompute_SMA20Window(t *testing.T) {
	closes := ramp(251, 100, 1)
	s := flatSeries(closes, 1000)
	set := Compute(s)

	// SMA20 at the last bar is the mean of the last 20 closes
	var sum float64
	for i := 231; i <= 250; i++ {
		sum += closes[i]
	}
	want := sum / 20
	got := set.SMA20[250]
	if !got.OK || math.Abs(got.Val-want) > 1e-9 {
		t.Errorf("expected sma20=%.4f, got %+v", want, got)
	}
	if set.SMA200[198].OK {
		t.Errorf("expected sma200 undefined at index 198")
	}
	if !set.SMA200[199].OK {
		t.Errorf("expected sma200 defined at index 199")
	}
}
