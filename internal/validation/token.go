package validation

import (
	"strings"

	"github.com/solana-ai-terminal/backend/internal/api/request"
)

// ValidateTrackToken validates a token tracking request.
// Only identity fields are mandatory; market fields are an optional snapshot.
func ValidateTrackToken(req request.TrackTokenRequest) error {
	errors := make(map[string]string)

	if err := ValidateAddress(req.Address); err != nil {
		errors["address"] = err.Error()
	}

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if req.MarketCap < 0 || req.PriceUsd < 0 || req.Supply < 0 {
		errors["market"] = "market fields cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
