package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solana-ai-terminal/backend/internal/api/response"
	"github.com/solana-ai-terminal/backend/internal/validation"
)

// ValidateAddressMiddleware validates that the address URL parameter is
// present and is a base58-encoded 32-byte Solana address. Returns 400 Bad
// Request otherwise. Applied to every route that carries a token or wallet
// address in the URL path.
func ValidateAddressMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")

		if address == "" {
			response.RespondError(w, http.StatusBadRequest, "valid address is required", "")
			return
		}

		if err := validation.ValidateAddress(address); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid address format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
