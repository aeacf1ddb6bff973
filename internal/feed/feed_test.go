package feed

import (
	"testing"
	"time"
)

func TestGenerator_Next(t *testing.T) {
	g := NewGenerator([]string{"PETR4", "VALE3"})

	for i := 0; i < 50; i++ {
		ev := g.Next()
		if ev.Ticker != "PETR4" && ev.Ticker != "VALE3" {
			t.Errorf("unexpected ticker %q", ev.Ticker)
		}
		if ev.ID == "" || ev.Timestamp == "" || ev.Message == "" || ev.Details == "" {
			t.Errorf("incomplete event: %+v", ev)
		}
		if ev.ChangePct < -5 || ev.ChangePct > 5 {
			t.Errorf("change %.2f outside [-5, 5]", ev.ChangePct)
		}
		if ev.Positive != (ev.ChangePct >= 0) {
			t.Errorf("positive flag disagrees with change %.2f", ev.ChangePct)
		}
		found := false
		for _, typ := range eventTypes {
			if ev.Type == typ {
				found = true
			}
		}
		if !found {
			t.Errorf("unknown event type %q", ev.Type)
		}
	}
}

func TestGenerator_Interval(t *testing.T) {
	g := NewGenerator([]string{"PETR4"})
	for i := 0; i < 100; i++ {
		d := g.Interval()
		if d < time.Second || d >= 4*time.Second {
			t.Errorf("interval %s outside [1s, 4s)", d)
		}
	}
}

func TestGenerator_RecentBacklog(t *testing.T) {
	g := NewGenerator([]string{"PETR4"})
	if got := g.Recent(); len(got) != 0 {
		t.Errorf("expected empty backlog before any events, got %d", len(got))
	}

	var last Event
	for i := 0; i < 3; i++ {
		last = g.Next()
	}
	recent := g.Recent()
	if len(recent) != 3 {
		t.Fatalf("expected 3 retained events, got %d", len(recent))
	}
	if recent[2].ID != last.ID {
		t.Errorf("expected newest event last in backlog")
	}

	for i := 0; i < 2*recentEvents; i++ {
		g.Next()
	}
	if got := len(g.Recent()); got != recentEvents {
		t.Errorf("expected backlog capped at %d, got %d", recentEvents, got)
	}
}
