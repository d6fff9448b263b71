package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solana-ai-terminal/backend/internal/api/response"
	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/service"
)

// AnalysisHandler handles HTTP requests for AI token analysis.
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler with the provided service dependency.
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// Analyze handles POST requests to generate a trading plan for a tracked
// token. The verdict and timestamp are recorded on the token as a side
// effect.
//
// Endpoint: POST /api/analyze/{address}
// Response: 200 OK with TradingPlan
// Error: 400 Bad Request if the address is invalid (validated by middleware)
//        or no Gemini API key is configured
// Error: 404 Not Found if the token is not tracked
// Error: 502 Bad Gateway if market data is unavailable
// Error: 500 Internal Server Error if plan generation fails
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	plan, err := h.analysisService.AnalyzeToken(r.Context(), address)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTokenNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTokenNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrMissingAPIKey):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrMissingAPIKey.Error(), "")
		case errors.Is(err, apperrors.ErrFailedToFetchMarketData):
			response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToFetchMarketData.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToAnalyzeToken.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, plan)
}
