package service

import (
	"context"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/dexscreener"
	"github.com/solana-ai-terminal/backend/internal/model"
	"github.com/solana-ai-terminal/backend/internal/wallet"
)

// WalletService joins on-chain wallet balances with DexScreener prices to
// produce a USD-valued asset list.
type WalletService struct {
	wallet *wallet.Client
	dex    *dexscreener.Client
}

// NewWalletService creates a new WalletService with the provided dependencies.
func NewWalletService(walletClient *wallet.Client, dex *dexscreener.Client) *WalletService {
	return &WalletService{
		wallet: walletClient,
		dex:    dex,
	}
}

// Assets returns all holdings for a wallet address, priced in USD where a
// DexScreener pair exists and sorted by USD value descending. A holding with
// no known pair is still listed, with zero price.
func (s *WalletService) Assets(ctx context.Context, address string) ([]model.WalletAsset, error) {
	holdings, err := s.wallet.Holdings(ctx, address)
	if err != nil {
		log.Printf("failed to fetch wallet holdings for %s: %v", address, err)
		return nil, apperrors.ErrFailedToFetchWalletAssets
	}

	assets := make([]model.WalletAsset, len(holdings))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for i, holding := range holdings {
		g.Go(func() error {
			asset := model.WalletAsset{
				Address:  holding.Address,
				Decimals: holding.Decimals,
				Balance:  holding.Balance,
				IsSol:    holding.IsSol,
			}
			if holding.IsSol {
				asset.Symbol = "SOL"
				asset.Name = "Solana"
			}

			md, err := s.dex.MarketData(ctx, holding.Address)
			if err != nil {
				// Price lookup failures degrade to an unpriced holding.
				log.Printf("failed to price wallet asset %s: %v", holding.Address, err)
			}
			if md != nil {
				if !holding.IsSol {
					asset.Symbol = md.Symbol
					asset.Name = md.Name
				}
				asset.ImageURL = md.ImageURL
				asset.Price = md.Price
				asset.BalanceUsd = holding.Balance * md.Price
				asset.PriceChange24h = md.PriceChange24h
			}

			assets[i] = asset
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, apperrors.ErrFailedToFetchWalletAssets
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].BalanceUsd > assets[j].BalanceUsd
	})

	return assets, nil
}
