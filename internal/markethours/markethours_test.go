package markethours

import (
	"testing"
	"time"
)

func TestIsOpen(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"mid-session Tuesday", time.Date(2026, 3, 10, 14, 0, 0, 0, BRT), true},
		{"before open", time.Date(2026, 3, 10, 9, 59, 0, 0, BRT), false},
		{"at open", time.Date(2026, 3, 10, 10, 0, 0, 0, BRT), true},
		{"at close", time.Date(2026, 3, 10, 17, 0, 0, 0, BRT), false},
		{"Saturday", time.Date(2026, 3, 14, 12, 0, 0, 0, BRT), false},
		{"Sunday", time.Date(2026, 3, 15, 12, 0, 0, 0, BRT), false},
		{"Tiradentes holiday", time.Date(2026, 4, 21, 12, 0, 0, 0, BRT), false},
		{"Christmas", time.Date(2026, 12, 25, 12, 0, 0, 0, BRT), false},
	}
	for _, c := range cases {
		if got := IsOpen(c.t); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestIsOpen_ConvertsTimezone(t *testing.T) {
	// 16:00 UTC is 13:00 BRT on a Tuesday: open
	utc := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	if !IsOpen(utc) {
		t.Errorf("expected open for 13:00 BRT given in UTC")
	}
}

func TestNextOpen(t *testing.T) {
	// Friday evening: next open is Monday 10:00
	fri := time.Date(2026, 3, 13, 18, 0, 0, 0, BRT)
	next := NextOpen(fri)
	if next.Weekday() != time.Monday || next.Hour() != 10 {
		t.Errorf("expected Monday 10:00, got %s", next)
	}

	// early on a trading day: today's open
	tue := time.Date(2026, 3, 10, 8, 0, 0, 0, BRT)
	next = NextOpen(tue)
	if next.Day() != 10 || next.Hour() != 10 {
		t.Errorf("expected same-day open, got %s", next)
	}
}

func TestNextOpen_SkipsHoliday(t *testing.T) {
	// April 20 2026 is a Monday; April 21 is Tiradentes. From Monday
	// evening the next open is Wednesday the 22nd.
	mon := time.Date(2026, 4, 20, 18, 0, 0, 0, BRT)
	next := NextOpen(mon)
	if next.Day() != 22 || next.Month() != time.April {
		t.Errorf("expected April 22, got %s", next)
	}
}

func TestStatus(t *testing.T) {
	open := Status(time.Date(2026, 3, 10, 14, 0, 0, 0, BRT))
	if open == "" || open[:6] != "Aberto" {
		t.Errorf("expected open status, got %q", open)
	}
	closed := Status(time.Date(2026, 3, 14, 14, 0, 0, 0, BRT))
	if closed == "" || closed[:7] != "Fechado" {
		t.Errorf("expected closed status, got %q", closed)
	}
}

func TestInClosingAuction(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"at close", time.Date(2026, 3, 10, 17, 0, 0, 0, BRT), true},
		{"mid auction", time.Date(2026, 3, 10, 17, 30, 0, 0, BRT), true},
		{"auction over", time.Date(2026, 3, 10, 17, 45, 0, 0, BRT), false},
		{"mid session", time.Date(2026, 3, 10, 14, 0, 0, 0, BRT), false},
		{"saturday", time.Date(2026, 3, 14, 17, 10, 0, 0, BRT), false},
		{"tiradentes", time.Date(2026, 4, 21, 17, 10, 0, 0, BRT), false},
	}
	for _, c := range cases {
		if got := InClosingAuction(c.t); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestStatus_ClosingAuction(t *testing.T) {
	s := Status(time.Date(2026, 3, 10, 17, 10, 0, 0, BRT))
	if s != "Leilão de fechamento" {
		t.Errorf("expected auction status, got %q", s)
	}
}
