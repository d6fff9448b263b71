package service_test

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"

	"github.com/solana-ai-terminal/backend/internal/api/request"
	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/model"
	"github.com/solana-ai-terminal/backend/internal/service"
	"github.com/solana-ai-terminal/backend/internal/testutil"
	"github.com/solana-ai-terminal/backend/internal/validation"
)

const tolerance = 1e-9

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

// deadFeedURL is unreachable; tests that use it rely on cached market caps.
const deadFeedURL = "http://127.0.0.1:0"

func newLedger(t *testing.T) (*service.PortfolioService, *sql.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	return testutil.NewTestPortfolioService(t, db, deadFeedURL), db
}

func trackRequest(address string) request.TrackTokenRequest {
	return request.TrackTokenRequest{
		Address:   address,
		Symbol:    "TEST",
		Name:      "Test Token",
		MarketCap: 100_000,
	}
}

func TestPortfolioService_TrackToken(t *testing.T) {
	t.Run("tracks a new token", func(t *testing.T) {
		svc, db := newLedger(t)

		outcome, err := svc.TrackToken(context.Background(), trackRequest(testutil.MakeAddress()))
		if err != nil {
			t.Fatalf("TrackToken failed: %v", err)
		}
		if !outcome.Applied {
			t.Errorf("Expected applied outcome, got %+v", outcome)
		}

		testutil.AssertRowCount(t, db, "token", 1)
	})

	t.Run("duplicate track is skipped and leaves one row", func(t *testing.T) {
		svc, db := newLedger(t)
		address := testutil.MakeAddress()

		if _, err := svc.TrackToken(context.Background(), trackRequest(address)); err != nil {
			t.Fatalf("First TrackToken failed: %v", err)
		}

		second := trackRequest(address)
		second.Name = "Renamed Token"
		outcome, err := svc.TrackToken(context.Background(), second)
		if err != nil {
			t.Fatalf("Second TrackToken failed: %v", err)
		}
		if outcome.Applied {
			t.Error("Expected skipped outcome for duplicate track")
		}

		testutil.AssertRowCount(t, db, "token", 1)

		// The original row must not be overwritten.
		var name string
		if err := db.QueryRow(`SELECT name FROM token WHERE address = ?`, address).Scan(&name); err != nil {
			t.Fatalf("Failed to read token: %v", err)
		}
		if name != "Test Token" {
			t.Errorf("Expected original name preserved, got %q", name)
		}
	})

	t.Run("rejects invalid addresses", func(t *testing.T) {
		svc, _ := newLedger(t)

		_, err := svc.TrackToken(context.Background(), trackRequest("not-base58!"))

		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected validation error, got %v", err)
		}
		if _, ok := vErr.Fields["address"]; !ok {
			t.Errorf("Expected address field error, got %v", vErr.Fields)
		}
	})
}

func TestPortfolioService_UntrackToken(t *testing.T) {
	t.Run("untrack cascades to trades", func(t *testing.T) {
		svc, db := newLedger(t)

		token := testutil.NewToken().Build(t, db)
		testutil.NewTrade(token.Address).Build(t, db)
		testutil.NewTrade(token.Address).Sell().WithAmountSol(0.5).Build(t, db)

		outcome, err := svc.UntrackToken(context.Background(), token.Address)
		if err != nil {
			t.Fatalf("UntrackToken failed: %v", err)
		}
		if !outcome.Applied {
			t.Errorf("Expected applied outcome, got %+v", outcome)
		}

		testutil.AssertRowCount(t, db, "token", 0)
		testutil.AssertRowCount(t, db, "trade", 0)
	})

	t.Run("untracking an unknown address is a no-op", func(t *testing.T) {
		svc, _ := newLedger(t)

		outcome, err := svc.UntrackToken(context.Background(), testutil.MakeAddress())
		if err != nil {
			t.Fatalf("UntrackToken failed: %v", err)
		}
		if outcome.Applied {
			t.Error("Expected skipped outcome for unknown address")
		}
	})
}

func TestPortfolioService_AddTrade(t *testing.T) {
	t.Run("records a buy", func(t *testing.T) {
		svc, db := newLedger(t)
		token := testutil.NewToken().Build(t, db)

		trade, outcome, err := svc.AddTrade(context.Background(), token.Address, request.CreateTradeRequest{
			Type:      model.TradeTypeBuy,
			AmountSol: 1,
			MarketCap: 100_000,
			Date:      1700000000000,
		})
		if err != nil {
			t.Fatalf("AddTrade failed: %v", err)
		}
		if !outcome.Applied {
			t.Fatalf("Expected applied outcome, got %+v", outcome)
		}
		if trade.ID == "" {
			t.Error("Expected server-assigned trade id")
		}

		testutil.AssertRowCount(t, db, "trade", 1)
	})

	t.Run("trade against untracked token is skipped", func(t *testing.T) {
		svc, db := newLedger(t)

		trade, outcome, err := svc.AddTrade(context.Background(), testutil.MakeAddress(), request.CreateTradeRequest{
			Type:      model.TradeTypeBuy,
			AmountSol: 1,
			MarketCap: 100_000,
			Date:      1700000000000,
		})
		if err != nil {
			t.Fatalf("AddTrade failed: %v", err)
		}
		if outcome.Applied {
			t.Error("Expected skipped outcome for untracked token")
		}
		if trade != nil {
			t.Errorf("Expected nil trade, got %+v", trade)
		}

		testutil.AssertRowCount(t, db, "trade", 0)
	})

	t.Run("rejects invalid trade type and amounts", func(t *testing.T) {
		svc, db := newLedger(t)
		token := testutil.NewToken().Build(t, db)

		_, _, err := svc.AddTrade(context.Background(), token.Address, request.CreateTradeRequest{
			Type:      "HOLD",
			AmountSol: -1,
			MarketCap: 0,
			Date:      0,
		})

		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected validation error, got %v", err)
		}
		for _, field := range []string{"type", "amountSol", "marketCap", "date"} {
			if _, ok := vErr.Fields[field]; !ok {
				t.Errorf("Expected error for field %s, got %v", field, vErr.Fields)
			}
		}
	})

	t.Run("rejects a sell exceeding the open position", func(t *testing.T) {
		svc, db := newLedger(t)
		token := testutil.NewToken().Build(t, db)
		testutil.NewTrade(token.Address).WithAmountSol(1).WithMarketCap(100_000).Build(t, db)

		// 2 SOL at the same cap is twice the open units.
		_, _, err := svc.AddTrade(context.Background(), token.Address, request.CreateTradeRequest{
			Type:      model.TradeTypeSell,
			AmountSol: 2,
			MarketCap: 100_000,
			Date:      1700000000001,
		})
		if !errors.Is(err, apperrors.ErrInsufficientUnits) {
			t.Fatalf("Expected ErrInsufficientUnits, got %v", err)
		}

		testutil.AssertRowCount(t, db, "trade", 1)
	})

	t.Run("allows selling the exact full position", func(t *testing.T) {
		svc, db := newLedger(t)
		token := testutil.NewToken().Build(t, db)
		testutil.NewTrade(token.Address).WithAmountSol(1).WithMarketCap(100_000).Build(t, db)

		_, outcome, err := svc.AddTrade(context.Background(), token.Address, request.CreateTradeRequest{
			Type:      model.TradeTypeSell,
			AmountSol: 1,
			MarketCap: 100_000,
			Date:      1700000000001,
		})
		if err != nil {
			t.Fatalf("AddTrade failed: %v", err)
		}
		if !outcome.Applied {
			t.Errorf("Expected applied outcome, got %+v", outcome)
		}
	})

	t.Run("allows a larger sell when the price has risen", func(t *testing.T) {
		svc, db := newLedger(t)
		token := testutil.NewToken().Build(t, db)
		testutil.NewTrade(token.Address).WithAmountSol(1).WithMarketCap(100_000).Build(t, db)

		// 1.5 SOL at double the cap is only 75% of the open units.
		_, outcome, err := svc.AddTrade(context.Background(), token.Address, request.CreateTradeRequest{
			Type:      model.TradeTypeSell,
			AmountSol: 1.5,
			MarketCap: 200_000,
			Date:      1700000000001,
		})
		if err != nil {
			t.Fatalf("AddTrade failed: %v", err)
		}
		if !outcome.Applied {
			t.Errorf("Expected applied outcome, got %+v", outcome)
		}
	})
}

func TestPortfolioService_RemoveTrade(t *testing.T) {
	t.Run("removes an existing trade", func(t *testing.T) {
		svc, db := newLedger(t)
		token := testutil.NewToken().Build(t, db)
		trade := testutil.NewTrade(token.Address).Build(t, db)

		outcome, err := svc.RemoveTrade(context.Background(), token.Address, trade.ID)
		if err != nil {
			t.Fatalf("RemoveTrade failed: %v", err)
		}
		if !outcome.Applied {
			t.Errorf("Expected applied outcome, got %+v", outcome)
		}

		testutil.AssertRowCount(t, db, "trade", 0)
	})

	t.Run("removing an unknown trade is a no-op", func(t *testing.T) {
		svc, db := newLedger(t)
		token := testutil.NewToken().Build(t, db)
		testutil.NewTrade(token.Address).Build(t, db)

		outcome, err := svc.RemoveTrade(context.Background(), token.Address, testutil.MakeID())
		if err != nil {
			t.Fatalf("RemoveTrade failed: %v", err)
		}
		if outcome.Applied {
			t.Error("Expected skipped outcome for unknown trade id")
		}

		testutil.AssertRowCount(t, db, "trade", 1)
	})

	t.Run("trade id is scoped to its token", func(t *testing.T) {
		svc, db := newLedger(t)
		tokenA := testutil.NewToken().Build(t, db)
		tokenB := testutil.NewToken().Build(t, db)
		trade := testutil.NewTrade(tokenA.Address).Build(t, db)

		outcome, err := svc.RemoveTrade(context.Background(), tokenB.Address, trade.ID)
		if err != nil {
			t.Fatalf("RemoveTrade failed: %v", err)
		}
		if outcome.Applied {
			t.Error("Expected skipped outcome when trade belongs to another token")
		}

		testutil.AssertRowCount(t, db, "trade", 1)
	})
}

func TestPortfolioService_GetPortfolio(t *testing.T) {
	t.Run("never traded position has nil metrics", func(t *testing.T) {
		svc, db := newLedger(t)
		testutil.NewToken().Build(t, db)

		positions, err := svc.GetPortfolio(context.Background())
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(positions))
		}
		if positions[0].Metrics != nil {
			t.Errorf("Expected nil metrics for never-traded position, got %+v", positions[0].Metrics)
		}
	})

	t.Run("metrics use the cached market cap", func(t *testing.T) {
		svc, db := newLedger(t)
		token := testutil.NewToken().WithMarketCap(200_000).Build(t, db)
		testutil.NewTrade(token.Address).WithAmountSol(1).WithMarketCap(100_000).Build(t, db)

		positions, err := svc.GetPortfolio(context.Background())
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}
		metrics := positions[0].Metrics
		if metrics == nil {
			t.Fatal("Expected metrics, got nil")
		}
		if !closeTo(metrics.CurrentValue, 2) {
			t.Errorf("Expected current value 2, got %v", metrics.CurrentValue)
		}
		if !closeTo(metrics.UnrealizedPnL, 1) {
			t.Errorf("Expected unrealized PnL 1, got %v", metrics.UnrealizedPnL)
		}
	})
}

func TestPortfolioService_GetSummary(t *testing.T) {
	t.Run("aggregates across positions", func(t *testing.T) {
		svc, db := newLedger(t)

		// Open position worth double its cost.
		tokenA := testutil.NewToken().WithMarketCap(200_000).Build(t, db)
		testutil.NewTrade(tokenA.Address).WithAmountSol(1).WithMarketCap(100_000).WithDate(1).Build(t, db)

		// Closed position that realized 0.5.
		tokenB := testutil.NewToken().WithMarketCap(200_000).Build(t, db)
		testutil.NewTrade(tokenB.Address).WithAmountSol(0.5).WithMarketCap(100_000).WithDate(1).Build(t, db)
		testutil.NewTrade(tokenB.Address).Sell().WithAmountSol(1).WithMarketCap(200_000).WithDate(2).Build(t, db)

		// Never traded.
		testutil.NewToken().Build(t, db)

		summary, err := svc.GetSummary(context.Background())
		if err != nil {
			t.Fatalf("GetSummary failed: %v", err)
		}

		if summary.TrackedTokens != 3 {
			t.Errorf("Expected 3 tracked tokens, got %d", summary.TrackedTokens)
		}
		if summary.OpenPositions != 1 {
			t.Errorf("Expected 1 open position, got %d", summary.OpenPositions)
		}
		if !closeTo(summary.TotalInvested, 1) {
			t.Errorf("Expected total invested 1, got %v", summary.TotalInvested)
		}
		if !closeTo(summary.TotalRealizedPnL, 0.5) {
			t.Errorf("Expected total realized PnL 0.5, got %v", summary.TotalRealizedPnL)
		}
		if !closeTo(summary.TotalCurrentValue, 2) {
			t.Errorf("Expected total current value 2, got %v", summary.TotalCurrentValue)
		}
	})
}
