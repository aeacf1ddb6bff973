// Package markethours answers whether the B3 exchange is currently in its
// regular trading session (10:00–17:00 BRT, Mon–Fri, excluding holidays).
package markethours

import (
	"fmt"
	"time"
)

// BRT is Brasília time. B3 does not observe daylight saving since 2019,
// so a fixed offset is sufficient.
var BRT = time.FixedZone("BRT", -3*3600)

const (
	OpenHour   = 10
	CloseHour  = 17
	CloseMin   = 0
	AuctionMin = 45 // closing auction runs until 17:45
)

// IsOpen reports whether t falls within the regular B3 session.
func IsOpen(t time.Time) bool {
	brt := t.In(BRT)
	wd := brt.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	if IsHoliday(brt) {
		return false
	}
	hm := brt.Hour()*60 + brt.Minute()
	return hm >= OpenHour*60 && hm < CloseHour*60+CloseMin
}

// InClosingAuction reports whether t falls in the closing-auction window
// (17:00–17:45 BRT) of a trading day.
func InClosingAuction(t time.Time) bool {
	brt := t.In(BRT)
	if !IsTradingDay(brt) {
		return false
	}
	hm := brt.Hour()*60 + brt.Minute()
	return hm >= CloseHour*60+CloseMin && hm < CloseHour*60+AuctionMin
}

// IsTradingDay reports whether t is a weekday and not a B3 holiday.
func IsTradingDay(t time.Time) bool {
	brt := t.In(BRT)
	wd := brt.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !IsHoliday(brt)
}

// NextOpen returns the next session open (10:00 BRT on the next trading day).
// If t precedes today's open on a trading day, today's open is returned.
func NextOpen(t time.Time) time.Time {
	brt := t.In(BRT)

	todayOpen := time.Date(brt.Year(), brt.Month(), brt.Day(), OpenHour, 0, 0, 0, BRT)
	if brt.Before(todayOpen) && IsTradingDay(brt) {
		return todayOpen
	}

	d := brt.AddDate(0, 0, 1)
	for i := 0; i < 10; i++ {
		if IsTradingDay(d) {
			return time.Date(d.Year(), d.Month(), d.Day(), OpenHour, 0, 0, 0, BRT)
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(brt.Year(), brt.Month(), brt.Day()+1, OpenHour, 0, 0, 0, BRT)
}

// TodayClose returns today's session close (17:00 BRT).
func TodayClose(t time.Time) time.Time {
	brt := t.In(BRT)
	return time.Date(brt.Year(), brt.Month(), brt.Day(), CloseHour, CloseMin, 0, 0, BRT)
}

// Status returns a human-readable session status.
func Status(t time.Time) string {
	if IsOpen(t) {
		d := TodayClose(t).Sub(t.In(BRT))
		return fmt.Sprintf("Aberto — fecha em %s", fmtDur(d))
	}
	if InClosingAuction(t) {
		return "Leilão de fechamento"
	}
	next := NextOpen(t)
	brt := next.In(BRT)
	return fmt.Sprintf("Fechado — abre %s %s (%s)",
		brt.Weekday().String()[:3], brt.Format("15:04"), fmtDur(next.Sub(t)))
}

func fmtDur(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
