package model

// MarketData is the live market lookup result for one token. Any field may
// be zero when the upstream feed omits it; EffectiveMarketCap applies the
// documented fallback order.
type MarketData struct {
	MarketCap      float64 `json:"marketCap,omitempty"`
	Price          float64 `json:"price,omitempty"`
	Supply         float64 `json:"supply,omitempty"`
	PriceChange24h float64 `json:"priceChange24h,omitempty"`
	Liquidity      float64 `json:"liquidity,omitempty"`
	Volume24h      float64 `json:"volume24h,omitempty"`
	Symbol         string  `json:"symbol,omitempty"`
	Name           string  `json:"name,omitempty"`
	ImageURL       string  `json:"imageUrl,omitempty"`
}

// EffectiveMarketCap derives the market cap used for valuing open positions:
// the reported market cap when present, price times supply as a fallback,
// and zero when neither is available.
func (m MarketData) EffectiveMarketCap() float64 {
	if m.MarketCap > 0 {
		return m.MarketCap
	}
	if m.Price > 0 && m.Supply > 0 {
		return m.Price * m.Supply
	}
	return 0
}
