package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solana-ai-terminal/backend/internal/api/response"
	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/jupiter"
	"github.com/solana-ai-terminal/backend/internal/rugcheck"
)

// maxProxyBodyBytes caps request bodies forwarded to upstream APIs.
const maxProxyBodyBytes = 1 << 20

// ProxyHandler relays RugCheck risk reports and Jupiter swap requests.
// Upstream bodies are passed through verbatim so the frontend sees the
// original payloads.
type ProxyHandler struct {
	rugcheck *rugcheck.Client
	jupiter  *jupiter.Client
}

// NewProxyHandler creates a new ProxyHandler with the provided client dependencies.
func NewProxyHandler(rugcheckClient *rugcheck.Client, jupiterClient *jupiter.Client) *ProxyHandler {
	return &ProxyHandler{
		rugcheck: rugcheckClient,
		jupiter:  jupiterClient,
	}
}

// RugCheck handles GET requests for a token's risk report.
//
// Endpoint: GET /api/rugcheck/{address}
// Response: 200 OK with the RugCheck report body
// Error: 400 Bad Request if the address is invalid (validated by middleware)
// Error: 404 Not Found if RugCheck has no report for the token
// Error: 502 Bad Gateway if the upstream request fails
func (h *ProxyHandler) RugCheck(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	report, err := h.rugcheck.Report(r.Context(), address)
	if err != nil {
		if errors.Is(err, apperrors.ErrReportNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrReportNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusBadGateway, "rugcheck request failed", err.Error())
		return
	}

	response.RespondRaw(w, http.StatusOK, report)
}

// JupiterQuote handles GET requests for a swap quote. Query parameters
// (inputMint, outputMint, amount, slippageBps) are forwarded unchanged and
// Jupiter's status code is relayed.
//
// Endpoint: GET /api/jupiter/quote
// Response: Upstream status with Jupiter's body
// Error: 502 Bad Gateway if the upstream request fails
func (h *ProxyHandler) JupiterQuote(w http.ResponseWriter, r *http.Request) {
	body, status, err := h.jupiter.Quote(r.Context(), r.URL.Query())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "jupiter request failed", err.Error())
		return
	}

	response.RespondRaw(w, status, body)
}

// JupiterSwap handles POST requests for a serialized swap transaction. The
// request body is forwarded unchanged and Jupiter's status code is relayed.
//
// Endpoint: POST /api/jupiter/swap
// Response: Upstream status with Jupiter's body
// Error: 400 Bad Request if the body cannot be read
// Error: 502 Bad Gateway if the upstream request fails
func (h *ProxyHandler) JupiterSwap(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxProxyBodyBytes))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	body, status, err := h.jupiter.Swap(r.Context(), payload)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "jupiter request failed", err.Error())
		return
	}

	response.RespondRaw(w, status, body)
}
