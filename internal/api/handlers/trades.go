package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solana-ai-terminal/backend/internal/api/request"
	"github.com/solana-ai-terminal/backend/internal/api/response"
	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/service"
	"github.com/solana-ai-terminal/backend/internal/validation"
)

// TradeHandler handles HTTP requests for a position's trade history.
type TradeHandler struct {
	portfolioService *service.PortfolioService
}

// NewTradeHandler creates a new TradeHandler with the provided service dependency.
func NewTradeHandler(portfolioService *service.PortfolioService) *TradeHandler {
	return &TradeHandler{
		portfolioService: portfolioService,
	}
}

// Trades handles GET requests to retrieve a position's trade history in
// replay order (date ascending, insertion order on ties).
//
// Endpoint: GET /api/portfolio/{address}/trades
// Response: 200 OK with array of Trade
// Error: 400 Bad Request if the address is invalid (validated by middleware)
// Error: 404 Not Found if the token is not tracked
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) Trades(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	trades, err := h.portfolioService.GetTrades(r.Context(), address)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTokenNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// CreateTrade handles POST requests to record a BUY or SELL against a
// tracked token. The trade id is assigned server-side.
//
// Endpoint: POST /api/portfolio/{address}/trades
// Request Body: CreateTradeRequest (type, amountSol, marketCap, date)
// Response: 201 Created with Trade
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the token is not tracked
// Error: 422 Unprocessable Entity if a SELL exceeds the open position
// Error: 500 Internal Server Error if the insert fails
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	req, err := parseJSON[request.CreateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	trade, outcome, err := h.portfolioService.AddTrade(r.Context(), address, req)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
			return
		}
		if errors.Is(err, apperrors.ErrInsufficientUnits) {
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInsufficientUnits.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToAddTrade.Error(), err.Error())
		return
	}

	if !outcome.Applied {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTokenNotFound.Error(), outcome.Reason)
		return
	}

	response.RespondJSON(w, http.StatusCreated, trade)
}

// DeleteTrade handles DELETE requests to remove one trade from a position's
// history. Removing an unknown trade is a no-op reported through the outcome.
//
// Endpoint: DELETE /api/portfolio/{address}/trades/{uuid}
// Response: 200 OK with Outcome
// Error: 400 Bad Request if address or trade id is invalid (validated by middleware)
// Error: 500 Internal Server Error if the delete fails
func (h *TradeHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	tradeID := chi.URLParam(r, "uuid")

	outcome, err := h.portfolioService.RemoveTrade(r.Context(), address, tradeID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRemoveTrade.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, outcome)
}
