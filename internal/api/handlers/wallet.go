package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solana-ai-terminal/backend/internal/api/response"
	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/service"
)

// WalletHandler handles HTTP requests for wallet asset lookups.
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler with the provided service dependency.
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// Assets handles GET requests to list a wallet's holdings priced in USD,
// sorted by value descending.
//
// Endpoint: GET /api/wallet/{address}/assets
// Response: 200 OK with array of WalletAsset
// Error: 400 Bad Request if the address is invalid (validated by middleware)
// Error: 502 Bad Gateway if the RPC lookup fails
func (h *WalletHandler) Assets(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	assets, err := h.walletService.Assets(r.Context(), address)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToFetchWalletAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}
