package model

// TradingPlan verdict values, as produced by the analysis model.
const (
	VerdictBuy   = "BUY"
	VerdictSell  = "SELL"
	VerdictWait  = "WAIT"
	VerdictDegen = "DEGEN PLAY"
)

// TradingPlan is the structured AI analysis for one token.
type TradingPlan struct {
	Verdict    string   `json:"verdict"`
	Confidence float64  `json:"confidence"`
	RiskLevel  string   `json:"riskLevel"`
	Action     string   `json:"action"`
	Entry      string   `json:"entry"`
	StopLoss   string   `json:"stopLoss"`
	TakeProfit []string `json:"takeProfit"`
	Reasoning  []string `json:"reasoning"`
}
