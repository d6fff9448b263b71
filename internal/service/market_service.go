package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/dexscreener"
	"github.com/solana-ai-terminal/backend/internal/model"
	"github.com/solana-ai-terminal/backend/internal/repository"
)

// refreshConcurrency bounds the number of DexScreener requests in flight
// during a scheduled refresh.
const refreshConcurrency = 4

// MarketService serves token market data from DexScreener and maintains the
// cached snapshot on each tracked token. The cache is what keeps portfolio
// valuations and realized PnL available when the feed is down.
type MarketService struct {
	dex       *dexscreener.Client
	tokenRepo *repository.TokenRepository
}

// NewMarketService creates a new MarketService with the provided dependencies.
func NewMarketService(dex *dexscreener.Client, tokenRepo *repository.TokenRepository) *MarketService {
	return &MarketService{
		dex:       dex,
		tokenRepo: tokenRepo,
	}
}

// Search proxies a free-text token search to DexScreener.
func (s *MarketService) Search(ctx context.Context, q string) ([]dexscreener.Pair, error) {
	pairs, err := s.dex.Search(ctx, q)
	if err != nil {
		log.Printf("market search failed for %q: %v", q, err)
		return nil, apperrors.ErrFailedToFetchMarketData
	}
	return pairs, nil
}

// TokenMarketData returns the current market snapshot for a token. A live
// DexScreener answer is written through to the token cache; when the feed
// fails or knows no pair, the cached snapshot is served instead. A nil result
// with a nil error means no data exists anywhere for the address.
func (s *MarketService) TokenMarketData(ctx context.Context, address string) (*model.MarketData, error) {
	md, err := s.dex.MarketData(ctx, address)
	if err == nil && md != nil {
		if cacheErr := s.tokenRepo.UpdateMarketData(address, *md); cacheErr != nil && !errors.Is(cacheErr, apperrors.ErrTokenNotFound) {
			log.Printf("failed to cache market data for %s: %v", address, cacheErr)
		}
		return md, nil
	}
	if err != nil {
		log.Printf("live market data unavailable for %s: %v", address, err)
	}

	token, cacheErr := s.tokenRepo.GetToken(address)
	if cacheErr != nil {
		if errors.Is(cacheErr, apperrors.ErrTokenNotFound) {
			if err != nil {
				return nil, apperrors.ErrFailedToFetchMarketData
			}
			return nil, nil
		}
		return nil, apperrors.ErrFailedToFetchMarketData
	}

	return &model.MarketData{
		Symbol:         token.Symbol,
		Name:           token.Name,
		ImageURL:       token.ImageURL,
		Price:          token.PriceUsd,
		MarketCap:      token.MarketCap,
		Supply:         token.Supply,
		PriceChange24h: token.PriceChange24h,
	}, nil
}

// RefreshAll fetches fresh market data for every tracked token and writes it
// through to the cache. Fetches run concurrently with a bounded limit, and
// transient upstream failures are retried with exponential backoff. A token
// whose refresh ultimately fails keeps its previous snapshot.
func (s *MarketService) RefreshAll(ctx context.Context) error {
	tokens, err := s.tokenRepo.GetTokens()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for _, token := range tokens {
		address := token.Address
		g.Go(func() error {
			if err := s.refreshToken(ctx, address); err != nil {
				log.Printf("price refresh failed for %s: %v", address, err)
			}
			// Failures are logged per token, not propagated, so one dead
			// pair cannot abort the rest of the sweep.
			return nil
		})
	}

	return g.Wait()
}

func (s *MarketService) refreshToken(ctx context.Context, address string) error {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		md, err := s.dex.MarketData(ctx, address)
		if err != nil {
			return retry.RetryableError(err)
		}
		if md == nil {
			// DexScreener knows no pair for this token. Not retryable.
			return nil
		}
		return s.tokenRepo.UpdateMarketData(address, *md)
	})
}
