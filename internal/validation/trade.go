package validation

import (
	"fmt"
	"strings"

	"github.com/solana-ai-terminal/backend/internal/api/request"
)

// ValidTradeType contains the allowed trade type values.
var ValidTradeType = map[string]bool{
	"BUY": true, "SELL": true,
}

// ValidateCreateTrade validates a trade creation request.
// The ledger does not trust the submitting form: type, amount and market cap
// are re-checked here before a trade can enter the position history.
//
// Required fields:
//   - type: Must be one of: BUY, SELL
//   - amountSol: Must be positive
//   - marketCap: Must be positive (it is the accounting denominator)
//   - date: Must be a positive epoch-milliseconds timestamp
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTradeType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.AmountSol <= 0.0 {
		errors["amountSol"] = "amountSol must be positive"
	}

	if req.MarketCap <= 0.0 {
		errors["marketCap"] = "marketCap must be positive"
	}

	if req.Date <= 0 {
		errors["date"] = "date must be a positive epoch-milliseconds timestamp"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
