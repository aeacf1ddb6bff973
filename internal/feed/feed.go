// Package feed generates simulated live market events and streams them to
// WebSocket clients. The events are decorative: bounded random interval
// between emissions, ticker and event type chosen uniformly at random, and
// the loop stops promptly when the client disconnects.
package feed

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"b3vision/internal/ringbuf"
)

// Event types emitted by the generator.
var eventTypes = []string{
	"buy_order",
	"sell_order",
	"execution",
	"market_depth",
	"price_change",
	"volume_spike",
}

// Event is one simulated market occurrence.
type Event struct {
	ID        string  `json:"id"`
	Ticker    string  `json:"ticker"`
	Type      string  `json:"type"`
	Timestamp string  `json:"timestamp"`
	ChangePct float64 `json:"change_pct"`
	Positive  bool    `json:"positive"`
	Message   string  `json:"message"`
	Details   string  `json:"details"`
}

// recentEvents is how many past events a new client receives on connect.
const recentEvents = 16

// Generator produces random events over a fixed ticker set. It retains the
// most recent events so late-joining clients get an initial backlog.
type Generator struct {
	tickers []string
	recent  *ringbuf.Ring[Event]

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a Generator over the given tickers.
func NewGenerator(tickers []string) *Generator {
	return &Generator{
		tickers: tickers,
		recent:  ringbuf.New[Event](recentEvents),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
}

// Recent returns the retained backlog, oldest first.
func (g *Generator) Recent() []Event {
	return g.recent.Snapshot()
}

// Next produces one random event. Safe for concurrent use.
func (g *Generator) Next() Event {
	g.mu.Lock()
	defer g.mu.Unlock()

	ticker := g.tickers[g.rng.Intn(len(g.tickers))]
	eventType := eventTypes[g.rng.Intn(len(eventTypes))]
	now := g.now()

	change := round2(g.rng.Float64()*10 - 5)
	price := round2(10 + g.rng.Float64()*90)
	qty := 10 + g.rng.Intn(991)
	volK := 100 + g.rng.Intn(900)

	ev := Event{
		ID:        fmt.Sprintf("%s_%d", ticker, now.UnixMilli()),
		Ticker:    ticker,
		Type:      eventType,
		Timestamp: now.Format("03:04:05 PM"),
		ChangePct: change,
		Positive:  change >= 0,
	}

	switch eventType {
	case "buy_order":
		ev.Message = "New BUY order"
		ev.Details = fmt.Sprintf("%d shares at R$ %.2f", qty, price)
	case "sell_order":
		ev.Message = "New SELL order"
		ev.Details = fmt.Sprintf("%d shares at R$ %.2f", qty, price)
	case "execution":
		ev.Message = fmt.Sprintf("Executed %d shares", qty)
		ev.Details = fmt.Sprintf("Average price: R$ %.2f", price)
	case "market_depth":
		ev.Message = "Market depth update"
		ev.Details = fmt.Sprintf("Volume: %dk shares", volK)
	case "price_change":
		ev.Message = "Price change"
		ev.Details = fmt.Sprintf("New price: R$ %.2f", price)
	case "volume_spike":
		ev.Message = "Volume spike detected"
		ev.Details = fmt.Sprintf("Volume: %dk shares (+%d%%)", volK*2, 50+g.rng.Intn(151))
	}
	g.recent.Push(ev)
	return ev
}

// Interval returns a random delay between emissions, in [1s, 4s).
func (g *Generator) Interval() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return time.Duration(float64(time.Second) * (1 + 3*g.rng.Float64()))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
