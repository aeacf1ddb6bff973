package model

// QuoteInfo holds the descriptive snapshot for one ticker.
type QuoteInfo struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	CurrentPrice  float64 `json:"current_price"`
	DayChangePct  float64 `json:"day_change_pct"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"market_cap"`
	PERatio       float64 `json:"pe_ratio"`
	DividendYield float64 `json:"dividend_yield"`
	Low52w        float64 `json:"low_52w"`
	High52w       float64 `json:"high_52w"`
	AvgVolume     int64   `json:"avg_volume"`
}
