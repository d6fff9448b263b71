package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solana-ai-terminal/backend/internal/api/handlers"
	"github.com/solana-ai-terminal/backend/internal/dexscreener"
	"github.com/solana-ai-terminal/backend/internal/model"
	"github.com/solana-ai-terminal/backend/internal/testutil"
)

func newMarketHandler(t *testing.T, feed http.HandlerFunc) *handlers.MarketHandler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	server := httptest.NewServer(feed)
	t.Cleanup(server.Close)

	return handlers.NewMarketHandler(testutil.NewTestMarketService(t, db, server.URL))
}

func TestMarketHandler_Search(t *testing.T) {
	t.Run("GET /api/market/search returns pairs", func(t *testing.T) {
		handler := newMarketHandler(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"schemaVersion": "1.0.0", "pairs": [{"chainId": "solana", "baseToken": {"symbol": "BONK"}}]}`))
		})

		req := httptest.NewRequest(http.MethodGet, "/api/market/search?q=bonk", nil)
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response []dexscreener.Pair
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 || response[0].BaseToken.Symbol != "BONK" {
			t.Errorf("Unexpected search result: %+v", response)
		}
	})

	t.Run("GET /api/market/search without q returns 400", func(t *testing.T) {
		handler := newMarketHandler(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("Feed should not be reached")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/market/search", nil)
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("GET /api/market/search maps upstream failure to 502", func(t *testing.T) {
		handler := newMarketHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/market/search?q=bonk", nil)
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", w.Code)
		}
	})
}

func TestMarketHandler_Token(t *testing.T) {
	address := testutil.MakeAddress()

	t.Run("GET /api/market/tokens/{address} returns market data", func(t *testing.T) {
		handler := newMarketHandler(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"schemaVersion": "1.0.0",
				"pairs": [{
					"chainId": "solana",
					"baseToken": {"address": "` + address + `", "symbol": "TEST", "name": "Test Token"},
					"priceUsd": "0.0001",
					"marketCap": 100000,
					"liquidity": {"usd": 50000},
					"volume": {"h24": 10000},
					"priceChange": {"h24": 2.0}
				}]
			}`))
		})

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/market/tokens/"+address,
			map[string]string{"address": address},
		)
		w := httptest.NewRecorder()

		handler.Token(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response model.MarketData
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.MarketCap != 100_000 {
			t.Errorf("Expected market cap 100000, got %v", response.MarketCap)
		}
	})

	t.Run("GET /api/market/tokens/{address} returns 404 when unknown", func(t *testing.T) {
		handler := newMarketHandler(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"schemaVersion": "1.0.0", "pairs": []}`))
		})

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/market/tokens/"+address,
			map[string]string{"address": address},
		)
		w := httptest.NewRecorder()

		handler.Token(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("GET /api/market/tokens/{address} maps dead feed to 502", func(t *testing.T) {
		handler := newMarketHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/market/tokens/"+address,
			map[string]string{"address": address},
		)
		w := httptest.NewRecorder()

		handler.Token(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", w.Code)
		}
	})
}
