package dexscreener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testMint = "So11111111111111111111111111111111111111112"

func newFakeFeed(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL)
}

func TestTokenPairs(t *testing.T) {
	t.Run("decodes pairs from the feed", func(t *testing.T) {
		client := newFakeFeed(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/tokens/"+testMint {
				t.Errorf("Unexpected path: %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"schemaVersion": "1.0.0",
				"pairs": [{
					"chainId": "solana",
					"dexId": "raydium",
					"pairAddress": "pair1",
					"baseToken": {"address": "` + testMint + `", "symbol": "SOL", "name": "Wrapped SOL"},
					"quoteToken": {"address": "usdc", "symbol": "USDC", "name": "USD Coin"},
					"priceUsd": "150.25",
					"liquidity": {"usd": 1000000},
					"volume": {"h24": 500000},
					"priceChange": {"h24": 2.5},
					"marketCap": 70000000000
				}]
			}`))
		})

		pairs, err := client.TokenPairs(context.Background(), testMint)
		if err != nil {
			t.Fatalf("TokenPairs failed: %v", err)
		}
		if len(pairs) != 1 {
			t.Fatalf("Expected 1 pair, got %d", len(pairs))
		}
		if pairs[0].BaseToken.Symbol != "SOL" {
			t.Errorf("Expected base symbol SOL, got %s", pairs[0].BaseToken.Symbol)
		}
		if pairs[0].PriceUsd != "150.25" {
			t.Errorf("Expected price string 150.25, got %s", pairs[0].PriceUsd)
		}
	})

	t.Run("null pairs decodes as empty", func(t *testing.T) {
		client := newFakeFeed(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"schemaVersion": "1.0.0", "pairs": null}`))
		})

		pairs, err := client.TokenPairs(context.Background(), testMint)
		if err != nil {
			t.Fatalf("TokenPairs failed: %v", err)
		}
		if len(pairs) != 0 {
			t.Errorf("Expected no pairs, got %d", len(pairs))
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		client := newFakeFeed(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		if _, err := client.TokenPairs(context.Background(), testMint); err == nil {
			t.Error("Expected error for non-200 response")
		}
	})
}

func TestSearch(t *testing.T) {
	client := newFakeFeed(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "bonk" {
			t.Errorf("Expected query bonk, got %s", got)
		}
		_, _ = w.Write([]byte(`{"schemaVersion": "1.0.0", "pairs": [{"chainId": "solana", "baseToken": {"symbol": "BONK"}}]}`))
	})

	pairs, err := client.Search(context.Background(), "bonk")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(pairs) != 1 || pairs[0].BaseToken.Symbol != "BONK" {
		t.Errorf("Unexpected search result: %+v", pairs)
	}
}

func TestBestSolanaPair(t *testing.T) {
	t.Run("picks the most liquid solana base pair", func(t *testing.T) {
		pairs := []Pair{
			{ChainID: "solana", PairAddress: "thin", BaseToken: PairToken{Address: testMint}, Liquidity: Liquidity{Usd: 100}},
			{ChainID: "ethereum", PairAddress: "wrongchain", BaseToken: PairToken{Address: testMint}, Liquidity: Liquidity{Usd: 1e9}},
			{ChainID: "solana", PairAddress: "quoted", QuoteToken: PairToken{Address: testMint}, Liquidity: Liquidity{Usd: 1e9}},
			{ChainID: "solana", PairAddress: "deep", BaseToken: PairToken{Address: testMint}, Liquidity: Liquidity{Usd: 50000}},
		}

		best := BestSolanaPair(pairs, testMint)
		if best == nil {
			t.Fatal("Expected a pair, got nil")
		}
		if best.PairAddress != "deep" {
			t.Errorf("Expected deep pair, got %s", best.PairAddress)
		}
	})

	t.Run("nil when no pair qualifies", func(t *testing.T) {
		pairs := []Pair{
			{ChainID: "ethereum", BaseToken: PairToken{Address: testMint}},
		}
		if best := BestSolanaPair(pairs, testMint); best != nil {
			t.Errorf("Expected nil, got %+v", best)
		}
	})
}

func TestPairMarketData(t *testing.T) {
	t.Run("prefers market cap over fdv", func(t *testing.T) {
		data := PairMarketData(&Pair{
			BaseToken: PairToken{Symbol: "TEST", Name: "Test Token"},
			PriceUsd:  "0.0001",
			MarketCap: 100_000,
			Fdv:       500_000,
		})

		if data.MarketCap != 100_000 {
			t.Errorf("Expected market cap 100000, got %v", data.MarketCap)
		}
		if data.Supply != 1e9 {
			t.Errorf("Expected derived supply 1e9, got %v", data.Supply)
		}
	})

	t.Run("falls back to fdv when market cap is missing", func(t *testing.T) {
		data := PairMarketData(&Pair{PriceUsd: "0.0001", Fdv: 500_000})

		if data.MarketCap != 500_000 {
			t.Errorf("Expected fdv fallback 500000, got %v", data.MarketCap)
		}
	})

	t.Run("unparseable price yields zero price and supply", func(t *testing.T) {
		data := PairMarketData(&Pair{PriceUsd: "", MarketCap: 100_000})

		if data.Price != 0 {
			t.Errorf("Expected zero price, got %v", data.Price)
		}
		if data.Supply != 0 {
			t.Errorf("Expected zero supply, got %v", data.Supply)
		}
	})
}

func TestMarketData(t *testing.T) {
	client := newFakeFeed(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"schemaVersion": "1.0.0",
			"pairs": [{
				"chainId": "solana",
				"baseToken": {"address": "` + testMint + `", "symbol": "SOL", "name": "Wrapped SOL"},
				"priceUsd": "150.0",
				"liquidity": {"usd": 1000000},
				"volume": {"h24": 500000},
				"priceChange": {"h24": -1.5},
				"marketCap": 70000000000,
				"info": {"imageUrl": "https://example.com/sol.png"}
			}]
		}`))
	})

	data, err := client.MarketData(context.Background(), testMint)
	if err != nil {
		t.Fatalf("MarketData failed: %v", err)
	}
	if data == nil {
		t.Fatal("Expected market data, got nil")
	}
	if data.Price != 150.0 {
		t.Errorf("Expected price 150, got %v", data.Price)
	}
	if data.PriceChange24h != -1.5 {
		t.Errorf("Expected price change -1.5, got %v", data.PriceChange24h)
	}
	if data.ImageURL != "https://example.com/sol.png" {
		t.Errorf("Unexpected image url: %s", data.ImageURL)
	}

	t.Run("no usable pair yields nil without error", func(t *testing.T) {
		empty := newFakeFeed(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"schemaVersion": "1.0.0", "pairs": []}`))
		})

		data, err := empty.MarketData(context.Background(), testMint)
		if err != nil {
			t.Fatalf("MarketData failed: %v", err)
		}
		if data != nil {
			t.Errorf("Expected nil, got %+v", data)
		}
	})
}
