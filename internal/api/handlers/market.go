package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/solana-ai-terminal/backend/internal/api/response"
	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/service"
)

// MarketHandler handles HTTP requests for token market data.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler with the provided service dependency.
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// Search handles GET requests to search tokens by symbol, name or address.
//
// Endpoint: GET /api/market/search?q=
// Response: 200 OK with array of DexScreener pairs
// Error: 400 Bad Request if q is missing
// Error: 502 Bad Gateway if the upstream feed fails
func (h *MarketHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		response.RespondError(w, http.StatusBadRequest, "query parameter q is required", "")
		return
	}

	pairs, err := h.marketService.Search(r.Context(), q)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToFetchMarketData.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, pairs)
}

// Token handles GET requests to retrieve market data for one token. Live data
// is preferred; the cached snapshot is served when the feed is down.
//
// Endpoint: GET /api/market/tokens/{address}
// Response: 200 OK with MarketData
// Error: 400 Bad Request if the address is invalid (validated by middleware)
// Error: 404 Not Found if no market data exists for the address
// Error: 502 Bad Gateway if the feed fails and no cached snapshot exists
func (h *MarketHandler) Token(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	md, err := h.marketService.TokenMarketData(r.Context(), address)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToFetchMarketData.Error(), err.Error())
		return
	}
	if md == nil {
		response.RespondError(w, http.StatusNotFound, "no market data for token", "")
		return
	}

	response.RespondJSON(w, http.StatusOK, md)
}
