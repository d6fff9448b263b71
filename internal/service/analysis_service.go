package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/solana-ai-terminal/backend/internal/analysis"
	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/model"
	"github.com/solana-ai-terminal/backend/internal/repository"
)

// AnalysisService produces AI trading plans for tracked tokens. The verdict
// and analysis timestamp are written back onto the token so the portfolio
// view can show the last opinion without re-running the model.
type AnalysisService struct {
	planner   *analysis.Planner
	settings  *SettingsService
	market    *MarketService
	tokenRepo *repository.TokenRepository
}

// NewAnalysisService creates a new AnalysisService with the provided dependencies.
func NewAnalysisService(
	planner *analysis.Planner,
	settings *SettingsService,
	market *MarketService,
	tokenRepo *repository.TokenRepository,
) *AnalysisService {
	return &AnalysisService{
		planner:   planner,
		settings:  settings,
		market:    market,
		tokenRepo: tokenRepo,
	}
}

// AnalyzeToken generates a trading plan for a tracked token from its current
// market data.
//
// Returns:
//   - *model.TradingPlan: The generated plan
//   - error: ErrTokenNotFound for untracked addresses, ErrMissingAPIKey when
//     no Gemini key is configured, ErrFailedToAnalyzeToken otherwise
func (s *AnalysisService) AnalyzeToken(ctx context.Context, address string) (*model.TradingPlan, error) {
	token, err := s.tokenRepo.GetToken(address)
	if err != nil {
		return nil, err
	}

	apiKey, err := s.settings.GeminiKey(ctx)
	if err != nil {
		return nil, err
	}

	market, err := s.market.TokenMarketData(ctx, address)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, apperrors.ErrFailedToFetchMarketData
	}

	plan, err := s.planner.Plan(ctx, apiKey, &token, market)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		log.Printf("analysis failed for %s: %v", address, err)
		return nil, apperrors.ErrFailedToAnalyzeToken
	}

	if err := s.tokenRepo.UpdateAnalysis(address, plan.Verdict, time.Now().UTC()); err != nil {
		log.Printf("failed to record analysis for %s: %v", address, err)
	}

	return plan, nil
}
