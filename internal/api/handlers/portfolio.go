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

// PortfolioHandler handles HTTP requests for the position ledger.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolioService.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolio handles GET requests to retrieve all tracked positions.
// Each position carries its token, trade history and derived metrics
// snapshot; metrics is null for positions that have never traded.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of Position
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	positions, err := h.portfolioService.GetPortfolio(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Summary handles GET requests to retrieve aggregate portfolio totals.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.GetSummary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Position handles GET requests to retrieve a single tracked position.
//
// Endpoint: GET /api/portfolio/{address}
// Response: 200 OK with Position
// Error: 400 Bad Request if the address is invalid (validated by middleware)
// Error: 404 Not Found if the token is not tracked
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Position(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	position, err := h.portfolioService.GetPosition(r.Context(), address)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTokenNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// TrackToken handles POST requests to start tracking a token. Tracking is
// idempotent; a duplicate request returns an unapplied outcome rather than
// an error, and never overwrites the stored token.
//
// Endpoint: POST /api/portfolio
// Request Body: TrackTokenRequest (address, symbol, name + market snapshot)
// Response: 200 OK with Outcome
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the insert fails
func (h *PortfolioHandler) TrackToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.TrackTokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	outcome, err := h.portfolioService.TrackToken(r.Context(), req)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToTrackToken.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, outcome)
}

// UntrackToken handles DELETE requests to stop tracking a token. The token's
// trade history is removed with it. Untracking an unknown address is a no-op
// reported through the outcome.
//
// Endpoint: DELETE /api/portfolio/{address}
// Response: 200 OK with Outcome
// Error: 400 Bad Request if the address is invalid (validated by middleware)
// Error: 500 Internal Server Error if the delete fails
func (h *PortfolioHandler) UntrackToken(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	outcome, err := h.portfolioService.UntrackToken(r.Context(), address)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUntrackToken.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, outcome)
}
