package testutil

import (
	"database/sql"
	"testing"

	"github.com/solana-ai-terminal/backend/internal/dexscreener"
	"github.com/solana-ai-terminal/backend/internal/repository"
	"github.com/solana-ai-terminal/backend/internal/service"
)

// NewTestMarketService creates a MarketService backed by a DexScreener client
// pointed at the given base URL, normally an httptest server faking the feed.
func NewTestMarketService(t *testing.T, db *sql.DB, dexBaseURL string) *service.MarketService {
	t.Helper()

	tokenRepo := repository.NewTokenRepository(db)
	return service.NewMarketService(dexscreener.NewClient(dexBaseURL), tokenRepo)
}

// NewTestPortfolioService creates a PortfolioService over the test database.
// The market dependency points at dexBaseURL; tests that never touch live
// valuation can pass an unreachable URL and rely on cached market caps.
func NewTestPortfolioService(t *testing.T, db *sql.DB, dexBaseURL string) *service.PortfolioService {
	t.Helper()

	tokenRepo := repository.NewTokenRepository(db)
	tradeRepo := repository.NewTradeRepository(db)

	return service.NewPortfolioService(
		tokenRepo,
		tradeRepo,
		NewTestMarketService(t, db, dexBaseURL),
	)
}

// NewTestSettingsService creates a SettingsService with the given fernet key
// and environment fallback.
func NewTestSettingsService(t *testing.T, db *sql.DB, fernetKey, envAPIKey string) *service.SettingsService {
	t.Helper()

	settingRepo := repository.NewSettingRepository(db)
	svc, err := service.NewSettingsService(settingRepo, fernetKey, envAPIKey)
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}
	return svc
}

// NewTestSystemService creates a SystemService over the test database.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{})
}
