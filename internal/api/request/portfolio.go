package request

// TrackTokenRequest asks the ledger to start tracking a token. The market
// fields are a snapshot from the search result that triggered the action and
// seed the cached market data; they are refreshed by the price feed afterwards.
type TrackTokenRequest struct {
	Address        string  `json:"address"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	PriceUsd       float64 `json:"priceUsd,omitempty"`
	PriceChange24h float64 `json:"priceChange24h,omitempty"`
	MarketCap      float64 `json:"marketCap,omitempty"`
	Supply         float64 `json:"supply,omitempty"`
}
