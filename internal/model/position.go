package model

// PositionMetrics is the derived PnL snapshot for one position. It is never
// persisted; it is recomputed from the trade list and the latest market cap
// every time it is needed. All monetary figures are denominated in SOL.
//
// A nil *PositionMetrics means "never traded", which is distinct from a
// snapshot whose numeric fields happen to be zero (broke even).
type PositionMetrics struct {
	Invested      float64 `json:"invested"`      // SOL still at work in the open position
	CurrentValue  float64 `json:"currentValue"`  // open units valued at the latest market cap
	RealizedPnL   float64 `json:"realizedPnL"`   // locked in by completed sells
	UnrealizedPnL float64 `json:"unrealizedPnL"` // currentValue - invested
	TotalPnL      float64 `json:"totalPnL"`      // realized + unrealized
	Holdings      bool    `json:"holdings"`      // any open units left

	// Degraded is set when one or more trades could not be used as recorded
	// (non-positive market cap, unknown type, or a sell clamped to the units
	// actually held). The figures are best-effort for this position.
	Degraded bool `json:"degraded,omitempty"`

	// PriceUnavailable is set when units are held but no usable market cap
	// was available, so currentValue and unrealizedPnL are indeterminate and
	// reported against a zero valuation. RealizedPnL remains exact.
	PriceUnavailable bool `json:"priceUnavailable,omitempty"`
}

// Position combines a tracked token with its trade history and derived
// metrics for API responses.
type Position struct {
	Token   Token            `json:"token"`
	Trades  []Trade          `json:"trades"`
	Metrics *PositionMetrics `json:"metrics"` // nil when never traded
}

// PortfolioSummary aggregates metrics across all positions that have trades.
// Positions without trades contribute to TrackedTokens only.
type PortfolioSummary struct {
	TrackedTokens      int     `json:"trackedTokens"`
	OpenPositions      int     `json:"openPositions"`
	TotalInvested      float64 `json:"totalInvested"`
	TotalCurrentValue  float64 `json:"totalCurrentValue"`
	TotalRealizedPnL   float64 `json:"totalRealizedPnL"`
	TotalUnrealizedPnL float64 `json:"totalUnrealizedPnL"`
	TotalPnL           float64 `json:"totalPnL"`
}
