package handlers

import (
	"net/http"
	"strings"

	"github.com/solana-ai-terminal/backend/internal/api/response"
	"github.com/solana-ai-terminal/backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService   *service.SystemService
	settingsService *service.SettingsService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, settingsService *service.SettingsService) *SystemHandler {
	return &SystemHandler{
		systemService:   systemService,
		settingsService: settingsService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// Version handles GET requests to retrieve version information and feature availability.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with model.VersionInfo
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.systemService.CheckVersion())
}

// GeminiKeyRequest carries a Gemini API key to store.
type GeminiKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// SetGeminiKey handles PUT requests to store the Gemini API key. The key is
// encrypted at rest and used by the analysis endpoint from then on.
//
// Endpoint: PUT /api/system/settings/gemini-key
// Request Body: GeminiKeyRequest (apiKey)
// Response: 204 No Content
// Error: 400 Bad Request if the body is invalid or the key is empty
// Error: 500 Internal Server Error if encryption or storage fails
func (h *SystemHandler) SetGeminiKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[GeminiKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "apiKey is required", "")
		return
	}

	if err := h.settingsService.SetGeminiKey(r.Context(), req.APIKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store api key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
