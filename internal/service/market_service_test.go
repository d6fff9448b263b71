package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solana-ai-terminal/backend/internal/service"
	"github.com/solana-ai-terminal/backend/internal/testutil"
)

func pairPayload(address string, marketCap float64) string {
	return fmt.Sprintf(`{
		"schemaVersion": "1.0.0",
		"pairs": [{
			"chainId": "solana",
			"baseToken": {"address": %q, "symbol": "TEST", "name": "Test Token"},
			"priceUsd": "0.0001",
			"liquidity": {"usd": 50000},
			"volume": {"h24": 10000},
			"priceChange": {"h24": 1.0},
			"marketCap": %g
		}]
	}`, address, marketCap)
}

func newFeedService(t *testing.T, db *sql.DB, handler http.HandlerFunc) *service.MarketService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return testutil.NewTestMarketService(t, db, server.URL)
}

func TestMarketService_TokenMarketData(t *testing.T) {
	t.Run("live data is written through to the cache", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		token := testutil.NewToken().WithMarketCap(100_000).Build(t, db)

		svc := newFeedService(t, db, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(pairPayload(token.Address, 250_000)))
		})

		md, err := svc.TokenMarketData(context.Background(), token.Address)
		if err != nil {
			t.Fatalf("TokenMarketData failed: %v", err)
		}
		if md == nil || md.MarketCap != 250_000 {
			t.Fatalf("Expected live market cap 250000, got %+v", md)
		}

		var cached float64
		if err := db.QueryRow(`SELECT market_cap FROM token WHERE address = ?`, token.Address).Scan(&cached); err != nil {
			t.Fatalf("Failed to read cache: %v", err)
		}
		if cached != 250_000 {
			t.Errorf("Expected cached market cap 250000, got %v", cached)
		}
	})

	t.Run("falls back to the cached snapshot when the feed fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		token := testutil.NewToken().WithMarketCap(100_000).Build(t, db)

		svc := newFeedService(t, db, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		md, err := svc.TokenMarketData(context.Background(), token.Address)
		if err != nil {
			t.Fatalf("TokenMarketData failed: %v", err)
		}
		if md == nil || md.MarketCap != 100_000 {
			t.Fatalf("Expected cached market cap 100000, got %+v", md)
		}
		if md.Symbol != "TEST" {
			t.Errorf("Expected cached symbol TEST, got %s", md.Symbol)
		}
	})

	t.Run("unknown token with a dead feed is an error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		svc := newFeedService(t, db, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		if _, err := svc.TokenMarketData(context.Background(), testutil.MakeAddress()); err == nil {
			t.Error("Expected error when neither the feed nor the cache has data")
		}
	})

	t.Run("unknown token with a healthy feed returns nil without error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		svc := newFeedService(t, db, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"schemaVersion": "1.0.0", "pairs": []}`))
		})

		md, err := svc.TokenMarketData(context.Background(), testutil.MakeAddress())
		if err != nil {
			t.Fatalf("TokenMarketData failed: %v", err)
		}
		if md != nil {
			t.Errorf("Expected nil, got %+v", md)
		}
	})
}

func TestMarketService_Search(t *testing.T) {
	t.Run("returns matching pairs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		svc := newFeedService(t, db, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"schemaVersion": "1.0.0", "pairs": [{"chainId": "solana", "baseToken": {"symbol": "BONK"}}]}`))
		})

		pairs, err := svc.Search(context.Background(), "bonk")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(pairs) != 1 {
			t.Errorf("Expected 1 pair, got %d", len(pairs))
		}
	})

	t.Run("upstream failure maps to a fetch error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		svc := newFeedService(t, db, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		if _, err := svc.Search(context.Background(), "bonk"); err == nil {
			t.Error("Expected error for upstream failure")
		}
	})
}

func TestMarketService_RefreshAll(t *testing.T) {
	t.Run("updates every tracked token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		tokenA := testutil.NewToken().WithMarketCap(100_000).Build(t, db)
		tokenB := testutil.NewToken().WithMarketCap(100_000).Build(t, db)

		svc := newFeedService(t, db, func(w http.ResponseWriter, r *http.Request) {
			// Path is /tokens/{address}.
			address := r.URL.Path[len("/tokens/"):]
			_, _ = w.Write([]byte(pairPayload(address, 300_000)))
		})

		if err := svc.RefreshAll(context.Background()); err != nil {
			t.Fatalf("RefreshAll failed: %v", err)
		}

		for _, address := range []string{tokenA.Address, tokenB.Address} {
			var cached float64
			if err := db.QueryRow(`SELECT market_cap FROM token WHERE address = ?`, address).Scan(&cached); err != nil {
				t.Fatalf("Failed to read cache: %v", err)
			}
			if cached != 300_000 {
				t.Errorf("Expected refreshed market cap 300000 for %s, got %v", address, cached)
			}
		}
	})

	t.Run("a token without pairs keeps its previous snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		stale := testutil.NewToken().WithMarketCap(100_000).Build(t, db)
		fresh := testutil.NewToken().WithMarketCap(100_000).Build(t, db)

		svc := newFeedService(t, db, func(w http.ResponseWriter, r *http.Request) {
			address := r.URL.Path[len("/tokens/"):]
			if address == stale.Address {
				_, _ = w.Write([]byte(`{"schemaVersion": "1.0.0", "pairs": []}`))
				return
			}
			_, _ = w.Write([]byte(pairPayload(address, 300_000)))
		})

		if err := svc.RefreshAll(context.Background()); err != nil {
			t.Fatalf("RefreshAll failed: %v", err)
		}

		var staleCap, freshCap float64
		if err := db.QueryRow(`SELECT market_cap FROM token WHERE address = ?`, stale.Address).Scan(&staleCap); err != nil {
			t.Fatalf("Failed to read cache: %v", err)
		}
		if err := db.QueryRow(`SELECT market_cap FROM token WHERE address = ?`, fresh.Address).Scan(&freshCap); err != nil {
			t.Fatalf("Failed to read cache: %v", err)
		}
		if staleCap != 100_000 {
			t.Errorf("Expected stale snapshot preserved, got %v", staleCap)
		}
		if freshCap != 300_000 {
			t.Errorf("Expected refreshed snapshot, got %v", freshCap)
		}
	})
}
