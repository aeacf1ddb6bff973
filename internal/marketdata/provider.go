// Package marketdata provides the market-data collaborator: a synthetic
// B3 provider that generates deterministic random-walk OHLCV series per
// ticker, so the service runs offline with realistic-looking data. Unknown
// tickers yield empty series, never a panic past this boundary.
package marketdata

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"b3vision/internal/model"
)

// Valid named periods and the business-day bar counts they map to.
var periodBars = map[string]int{
	"1d":  1,
	"5d":  5,
	"1mo": 22,
	"3mo": 66,
	"6mo": 126,
	"1y":  252,
	"2y":  504,
	"5y":  1260,
	"max": 2520,
}

// ParsePeriod maps a named period to a bar count; malformed periods are
// an ErrInvalidArgument.
func ParsePeriod(period string) (int, error) {
	n, ok := periodBars[period]
	if !ok {
		return 0, fmt.Errorf("marketdata: unknown period %q: %w", period, model.ErrInvalidArgument)
	}
	return n, nil
}

// IndexTicker is the benchmark index symbol.
const IndexTicker = "IBOV"

// B3 is the synthetic provider. Bar generation is seeded per ticker so
// repeated calls return identical series.
type B3 struct {
	now func() time.Time
}

// NewB3 creates the synthetic B3 provider.
func NewB3() *B3 {
	return &B3{now: time.Now}
}

// Tickers returns the known universe, sorted.
func (p *B3) Tickers() []string {
	out := make([]string, 0, len(universe))
	for t := range universe {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Sectors maps sector name to member tickers.
func (p *B3) Sectors() map[string][]string {
	out := make(map[string][]string, len(sectors))
	for sector, tickers := range sectors {
		cp := make([]string, len(tickers))
		copy(cp, tickers)
		out[sector] = cp
	}
	return out
}

// Series generates the OHLCV series for a ticker. Unknown tickers return
// an empty series and nil error.
func (p *B3) Series(ticker, period string) (*model.Series, error) {
	ticker = normalize(ticker)
	bars, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	st, ok := universe[ticker]
	if !ok {
		return &model.Series{Ticker: ticker}, nil
	}
	return p.generate(ticker, st, bars, 0.0002, 0.018), nil
}

// Index returns the benchmark series: a lower-volatility walk at index
// price levels.
func (p *B3) Index(period string) (*model.Series, error) {
	bars, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	idx := stock{name: "Ibovespa", basePrice: 128_000, baseVol: 9_000_000}
	return p.generate(IndexTicker, idx, bars, 0.0003, 0.011), nil
}

// Quote derives the descriptive snapshot from static facts plus the
// trailing year of generated bars. Unknown tickers are ErrNotFound.
func (p *B3) Quote(ticker string) (*model.QuoteInfo, error) {
	ticker = normalize(ticker)
	st, ok := universe[ticker]
	if !ok {
		return nil, fmt.Errorf("marketdata: unknown ticker %q: %w", ticker, model.ErrNotFound)
	}
	s := p.generate(ticker, st, 252, 0.0002, 0.018)
	last := s.Last()
	prev := s.Bars[s.Len()-2]

	low52, high52 := last.Low, last.High
	var volSum int64
	for i := range s.Bars {
		if s.Bars[i].Low < low52 {
			low52 = s.Bars[i].Low
		}
		if s.Bars[i].High > high52 {
			high52 = s.Bars[i].High
		}
		volSum += s.Bars[i].Volume
	}

	dayChange := 0.0
	if prev.Close != 0 {
		dayChange = (last.Close/prev.Close - 1) * 100
	}
	return &model.QuoteInfo{
		Ticker:        ticker,
		Name:          st.name,
		Sector:        st.sector,
		CurrentPrice:  last.Close,
		DayChangePct:  dayChange,
		Volume:        last.Volume,
		MarketCap:     st.marketCap,
		PERatio:       st.peRatio,
		DividendYield: st.divYield,
		Low52w:        low52,
		High52w:       high52,
		AvgVolume:     volSum / int64(s.Len()),
	}, nil
}

// generate builds a deterministic random-walk series ending at the most
// recent business day. The walk runs over the full max horizon and keeps
// the requested tail, so prices for overlapping periods agree.
func (p *B3) generate(ticker string, st stock, bars int, drift, vol float64) *model.Series {
	const horizon = 2520
	if bars > horizon {
		bars = horizon
	}
	rng := rand.New(rand.NewSource(seed(ticker)))

	dates := businessDays(p.now(), horizon)
	all := make([]model.Bar, horizon)
	closePrice := st.basePrice
	for i := 0; i < horizon; i++ {
		ret := drift + vol*rng.NormFloat64()
		open := closePrice * (1 + 0.002*rng.NormFloat64())
		closePrice = closePrice * (1 + ret)
		if closePrice < 0.01 {
			closePrice = 0.01
		}
		hi := math.Max(open, closePrice) * (1 + math.Abs(0.006*rng.NormFloat64()))
		lo := math.Min(open, closePrice) * (1 - math.Abs(0.006*rng.NormFloat64()))
		volume := float64(st.baseVol) * (0.4 + 1.2*rng.Float64())
		all[i] = model.Bar{
			Date:   dates[i],
			Open:   open,
			High:   hi,
			Low:    lo,
			Close:  closePrice,
			Volume: int64(volume),
		}
	}
	return &model.Series{Ticker: ticker, Bars: all[horizon-bars:]}
}

// businessDays returns n weekday dates ending at the most recent weekday
// on or before now, ascending.
func businessDays(now time.Time, n int) []time.Time {
	dates := make([]time.Time, n)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, -1)
	}
	for i := n - 1; i >= 0; i-- {
		dates[i] = day
		day = day.AddDate(0, 0, -1)
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, -1)
		}
	}
	return dates
}

func seed(ticker string) int64 {
	h := fnv.New64a()
	h.Write([]byte(ticker))
	return int64(h.Sum64())
}

// normalize strips the Yahoo-style ".SA" suffix and uppercases.
func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(ticker)), ".SA"))
}
