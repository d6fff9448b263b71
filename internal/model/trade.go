package model

import "time"

// Trade type values. Only BUY and SELL are accepted by the ledger.
const (
	TradeTypeBuy  = "BUY"
	TradeTypeSell = "SELL"
)

// Trade is an immutable record of one buy or sell for a tracked token.
// AmountSol is the SOL amount invested (BUY) or received (SELL), and
// MarketCap is the token's USD market capitalization at the moment of the
// trade. The pair defines the trade's synthetic unit count as
// AmountSol / MarketCap.
type Trade struct {
	ID           string    `json:"id"`
	TokenAddress string    `json:"tokenAddress"`
	Type         string    `json:"type"`
	AmountSol    float64   `json:"amountSol"`
	MarketCap    float64   `json:"marketCap"`
	Date         int64     `json:"date"` // epoch milliseconds, ordering only
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}
