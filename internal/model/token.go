package model

import "time"

// Token represents a tracked token in the portfolio watchlist.
// Market fields hold the last cached values from the price feed so the
// portfolio stays renderable when the feed is unavailable.
type Token struct {
	Address        string     `json:"address"`
	Symbol         string     `json:"symbol"`
	Name           string     `json:"name"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	PriceUsd       float64    `json:"priceUsd"`
	PriceChange24h float64    `json:"priceChange24h"`
	MarketCap      float64    `json:"marketCap"`
	Supply         float64    `json:"supply,omitempty"`
	LastAnalyzed   *time.Time `json:"lastAnalyzed,omitempty"`
	AIVerdict      *string    `json:"aiVerdict,omitempty"`
	CreatedAt      time.Time  `json:"createdAt,omitempty"`
}
