package request

// CreateTradeRequest records one buy or sell against a tracked token.
// Date is epoch milliseconds, matching the trade model.
type CreateTradeRequest struct {
	Type      string  `json:"type"`
	AmountSol float64 `json:"amountSol"`
	MarketCap float64 `json:"marketCap"`
	Date      int64   `json:"date"`
}
