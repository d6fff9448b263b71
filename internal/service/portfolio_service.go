package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/solana-ai-terminal/backend/internal/api/request"
	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/model"
	"github.com/solana-ai-terminal/backend/internal/repository"
	"github.com/solana-ai-terminal/backend/internal/validation"
)

// overSellTolerance absorbs float rounding when comparing units sold against
// units held, so selling an exact full position is never rejected.
const overSellTolerance = 1e-12

// PortfolioService owns the position ledger: which tokens are tracked, their
// trade histories, and the PnL snapshots derived from them. All mutations are
// written through to SQLite before they are acknowledged.
type PortfolioService struct {
	tokenRepo *repository.TokenRepository
	tradeRepo *repository.TradeRepository
	market    *MarketService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	tokenRepo *repository.TokenRepository,
	tradeRepo *repository.TradeRepository,
	market *MarketService,
) *PortfolioService {
	return &PortfolioService{
		tokenRepo: tokenRepo,
		tradeRepo: tradeRepo,
		market:    market,
	}
}

// TrackToken starts tracking a token. The operation is idempotent: tracking
// an address that is already tracked returns a Skipped outcome and leaves the
// stored token untouched, so a double-click in the UI cannot clobber state.
//
// Returns:
//   - Outcome: Applied on first insert, Skipped when already tracked
//   - error: A validation.Error for bad input, or a wrapped storage error
func (s *PortfolioService) TrackToken(ctx context.Context, req request.TrackTokenRequest) (Outcome, error) {
	if err := validation.ValidateTrackToken(req); err != nil {
		return Outcome{}, err
	}

	token := &model.Token{
		Address:        req.Address,
		Symbol:         req.Symbol,
		Name:           req.Name,
		ImageURL:       req.ImageURL,
		PriceUsd:       req.PriceUsd,
		PriceChange24h: req.PriceChange24h,
		MarketCap:      req.MarketCap,
		Supply:         req.Supply,
		CreatedAt:      time.Now().UTC(),
	}

	inserted, err := s.tokenRepo.InsertToken(token)
	if err != nil {
		return Outcome{}, apperrors.ErrFailedToTrackToken
	}
	if !inserted {
		return Skipped("token is already tracked"), nil
	}

	return Applied(), nil
}

// UntrackToken removes a token and, via the schema's cascade, its entire
// trade history. Unknown addresses are a Skipped outcome, not an error.
func (s *PortfolioService) UntrackToken(ctx context.Context, address string) (Outcome, error) {
	deleted, err := s.tokenRepo.DeleteToken(address)
	if err != nil {
		return Outcome{}, apperrors.ErrFailedToUntrackToken
	}
	if !deleted {
		return Skipped("token is not tracked"), nil
	}

	return Applied(), nil
}

// HasToken reports whether an address is currently tracked.
func (s *PortfolioService) HasToken(address string) (bool, error) {
	return s.tokenRepo.Exists(address)
}

// AddTrade records a BUY or SELL against a tracked token. The trade id is
// assigned server-side. A trade against an untracked address is a Skipped
// outcome. A SELL whose unit count exceeds the open position is rejected with
// apperrors.ErrInsufficientUnits before anything is written.
//
// Returns:
//   - *model.Trade: The stored trade when the outcome is Applied, else nil
//   - Outcome: Applied, or Skipped when the token is not tracked
//   - error: validation.Error, ErrInsufficientUnits, or a storage error
func (s *PortfolioService) AddTrade(ctx context.Context, address string, req request.CreateTradeRequest) (*model.Trade, Outcome, error) {
	if err := validation.ValidateCreateTrade(req); err != nil {
		return nil, Outcome{}, err
	}

	tracked, err := s.tokenRepo.Exists(address)
	if err != nil {
		return nil, Outcome{}, apperrors.ErrFailedToAddTrade
	}
	if !tracked {
		return nil, Skipped("token is not tracked"), nil
	}

	if req.Type == model.TradeTypeSell {
		history, err := s.tradeRepo.GetTradesByToken(address)
		if err != nil {
			return nil, Outcome{}, apperrors.ErrFailedToAddTrade
		}
		unitsSold := req.AmountSol / req.MarketCap
		if unitsSold > availableUnits(history)+overSellTolerance {
			return nil, Outcome{}, apperrors.ErrInsufficientUnits
		}
	}

	trade := &model.Trade{
		ID:           uuid.New().String(),
		TokenAddress: address,
		Type:         req.Type,
		AmountSol:    req.AmountSol,
		MarketCap:    req.MarketCap,
		Date:         req.Date,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.tradeRepo.InsertTrade(ctx, trade); err != nil {
		return nil, Outcome{}, apperrors.ErrFailedToAddTrade
	}

	return trade, Applied(), nil
}

// RemoveTrade deletes one trade from a position's history. An unknown token
// or trade id is a Skipped outcome. Removing a BUY can leave the remaining
// history oversold; the calculator clamps that case and flags the snapshot.
func (s *PortfolioService) RemoveTrade(ctx context.Context, address, tradeID string) (Outcome, error) {
	deleted, err := s.tradeRepo.DeleteTrade(ctx, address, tradeID)
	if err != nil {
		return Outcome{}, apperrors.ErrFailedToRemoveTrade
	}
	if !deleted {
		return Skipped("trade not found"), nil
	}

	return Applied(), nil
}

// GetTrades returns a position's trade history in replay order.
func (s *PortfolioService) GetTrades(ctx context.Context, address string) ([]model.Trade, error) {
	tracked, err := s.tokenRepo.Exists(address)
	if err != nil {
		return nil, apperrors.ErrFailedToRetrieveTrades
	}
	if !tracked {
		return nil, apperrors.ErrTokenNotFound
	}

	trades, err := s.tradeRepo.GetTradesByToken(address)
	if err != nil {
		return nil, apperrors.ErrFailedToRetrieveTrades
	}

	return trades, nil
}

// GetPortfolio returns every tracked position with its metrics snapshot.
// Valuations use the cached market cap maintained by the scheduled price
// refresh; the per-position endpoint does a live lookup instead.
func (s *PortfolioService) GetPortfolio(ctx context.Context) ([]model.Position, error) {
	tokens, err := s.tokenRepo.GetTokens()
	if err != nil {
		return nil, apperrors.ErrFailedToRetrievePortfolio
	}

	positions := make([]model.Position, 0, len(tokens))
	for _, token := range tokens {
		trades, err := s.tradeRepo.GetTradesByToken(token.Address)
		if err != nil {
			return nil, apperrors.ErrFailedToRetrievePortfolio
		}

		positions = append(positions, model.Position{
			Token:   token,
			Trades:  trades,
			Metrics: ComputePositionMetrics(trades, token.MarketCap),
		})
	}

	return positions, nil
}

// GetPosition returns one tracked position with a snapshot valued against
// live market data when the feed answers, falling back to the cached market
// cap so realized PnL stays available during an outage.
func (s *PortfolioService) GetPosition(ctx context.Context, address string) (*model.Position, error) {
	token, err := s.tokenRepo.GetToken(address)
	if err != nil {
		return nil, err
	}

	trades, err := s.tradeRepo.GetTradesByToken(address)
	if err != nil {
		return nil, apperrors.ErrFailedToRetrievePortfolio
	}

	marketCap := token.MarketCap
	if md, mdErr := s.market.TokenMarketData(ctx, address); mdErr == nil && md != nil {
		marketCap = md.EffectiveMarketCap()
	}

	return &model.Position{
		Token:   token,
		Trades:  trades,
		Metrics: ComputePositionMetrics(trades, marketCap),
	}, nil
}

// GetSummary aggregates metrics across all positions. Never-traded positions
// count toward TrackedTokens only; open positions are those still holding
// units after replay.
func (s *PortfolioService) GetSummary(ctx context.Context) (*model.PortfolioSummary, error) {
	positions, err := s.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}

	summary := &model.PortfolioSummary{TrackedTokens: len(positions)}
	for _, position := range positions {
		if position.Metrics == nil {
			continue
		}
		if position.Metrics.Holdings {
			summary.OpenPositions++
		}
		summary.TotalInvested += position.Metrics.Invested
		summary.TotalCurrentValue += position.Metrics.CurrentValue
		summary.TotalRealizedPnL += position.Metrics.RealizedPnL
		summary.TotalUnrealizedPnL += position.Metrics.UnrealizedPnL
		summary.TotalPnL += position.Metrics.TotalPnL
	}

	return summary, nil
}
