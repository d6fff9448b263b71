package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTokenNotFound indicates that no position is tracked for the given token address.
	ErrTokenNotFound = errors.New("token not found")

	// ErrTradeNotFound indicates that a trade with the given ID does not exist for the position.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrSettingNotFound indicates that a system setting has not been configured.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrReportNotFound indicates that the risk report provider has no report
	// for the token, typically because the token is too new.
	ErrReportNotFound = errors.New("report not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientUnits indicates that a sell record would dispose of more
	// units than the position's trade history accounts for.
	ErrInsufficientUnits = errors.New("insufficient units for sale")

	// ErrInvalidTradeType indicates a trade type outside {BUY, SELL}.
	ErrInvalidTradeType = errors.New("invalid trade type")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidAddress indicates that a token or wallet address is not a
	// valid base58-encoded 32-byte public key.
	ErrInvalidAddress = errors.New("invalid address format")

	// ErrNonPositiveAmount indicates that an amount or market cap field is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrMissingAPIKey indicates that no Gemini API key is configured.
	ErrMissingAPIKey = errors.New("gemini api key not configured")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, not missing entities or validation issues.
var (
	ErrFailedToRetrievePortfolio = errors.New("failed to retrieve portfolio")
	ErrFailedToRetrieveTrades    = errors.New("failed to retrieve trades")
	ErrFailedToTrackToken        = errors.New("failed to track token")
	ErrFailedToUntrackToken      = errors.New("failed to untrack token")
	ErrFailedToAddTrade          = errors.New("failed to add trade")
	ErrFailedToRemoveTrade       = errors.New("failed to remove trade")
	ErrFailedToFetchMarketData   = errors.New("failed to fetch market data")
	ErrFailedToFetchWalletAssets = errors.New("failed to fetch wallet assets")
	ErrFailedToAnalyzeToken      = errors.New("failed to analyze token")
)
