package service

import (
	"sort"

	"github.com/solana-ai-terminal/backend/internal/model"
)

// ComputePositionMetrics calculates average-cost-basis PnL for a token's trade
// history against the current market cap. This is the core accounting engine
// used by both per-token endpoints and portfolio aggregation.
//
// The position is modeled in synthetic units where one trade's unit count is
// amountSol / marketCapAtTrade. Trades are replayed in chronological order:
//   - BUY: Increases invested SOL and units held
//   - SELL: Realizes amountSol minus the average cost of the units sold, and
//     reduces invested SOL and units held proportionally
//
// Trades with a non-positive market cap or amount cannot be priced and are
// skipped, marking the result degraded rather than poisoning every figure
// downstream with NaN or Inf. A SELL of more units than held is clamped to
// the units available for the same reason; removing an earlier BUY can leave
// a history retroactively oversold.
//
// Parameters:
//   - trades: All trades for the token, in any order
//   - currentMarketCap: Market cap used to value the open position; pass 0
//     when no market data is available
//
// Returns:
// A PositionMetrics value, or nil when trades is empty so callers can
// distinguish "never traded" from a flat position.
func ComputePositionMetrics(trades []model.Trade, currentMarketCap float64) *model.PositionMetrics {
	if len(trades) == 0 {
		return nil
	}

	ordered := make([]model.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	var invested, units, realized float64
	degraded := false

	for _, trade := range ordered {
		if trade.MarketCap <= 0 || trade.AmountSol <= 0 {
			degraded = true
			continue
		}

		switch trade.Type {
		case model.TradeTypeBuy:
			invested += trade.AmountSol
			units += trade.AmountSol / trade.MarketCap
		case model.TradeTypeSell:
			unitsSold := trade.AmountSol / trade.MarketCap
			if unitsSold > units {
				unitsSold = units
				degraded = true
			}

			costOfSold := 0.0
			if units > 0 {
				costOfSold = unitsSold * (invested / units)
			}

			realized += trade.AmountSol - costOfSold
			units -= unitsSold
			invested -= costOfSold
		default:
			degraded = true
		}
	}

	metrics := &model.PositionMetrics{
		Invested:    invested,
		RealizedPnL: realized,
		Holdings:    units > 0,
		Degraded:    degraded,
	}

	if currentMarketCap > 0 {
		metrics.CurrentValue = units * currentMarketCap
	} else if units > 0 {
		metrics.PriceUnavailable = true
	}

	metrics.UnrealizedPnL = metrics.CurrentValue - invested
	metrics.TotalPnL = metrics.RealizedPnL + metrics.UnrealizedPnL

	return metrics
}

// availableUnits replays a trade history and returns the units currently held.
// Used to reject a SELL that exceeds the open position before it is recorded.
func availableUnits(trades []model.Trade) float64 {
	ordered := make([]model.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	var units float64
	for _, trade := range ordered {
		if trade.MarketCap <= 0 || trade.AmountSol <= 0 {
			continue
		}
		switch trade.Type {
		case model.TradeTypeBuy:
			units += trade.AmountSol / trade.MarketCap
		case model.TradeTypeSell:
			unitsSold := trade.AmountSol / trade.MarketCap
			if unitsSold > units {
				unitsSold = units
			}
			units -= unitsSold
		}
	}

	return units
}
