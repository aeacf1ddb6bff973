package markethours

import "time"

// B3 holidays for 2026.
// Source: B3 official trading calendar.
var b3Holidays2026 = []struct {
	month time.Month
	day   int
}{
	{time.January, 1},   // Confraternização Universal
	{time.February, 16}, // Carnaval
	{time.February, 17}, // Carnaval
	{time.April, 3},     // Sexta-feira Santa
	{time.April, 21},    // Tiradentes
	{time.May, 1},       // Dia do Trabalho
	{time.June, 4},      // Corpus Christi
	{time.July, 9},      // Revolução Constitucionalista (SP)
	{time.September, 7}, // Independência
	{time.October, 12},  // Nossa Senhora Aparecida
	{time.November, 2},  // Finados
	{time.November, 15}, // Proclamação da República
	{time.November, 20}, // Consciência Negra
	{time.December, 24}, // Véspera de Natal
	{time.December, 25}, // Natal
	{time.December, 31}, // Véspera de Ano Novo
}

var holidaySet map[string]bool

func init() {
	holidaySet = make(map[string]bool, len(b3Holidays2026))
	for _, h := range b3Holidays2026 {
		holidaySet[dateKey(2026, h.month, h.day)] = true
	}
}

// IsHoliday returns true if the date (in BRT) is a B3 holiday.
func IsHoliday(t time.Time) bool {
	brt := t.In(BRT)
	return holidaySet[dateKey(brt.Year(), brt.Month(), brt.Day())]
}

func dateKey(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, BRT).Format("2006-01-02")
}
