package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"

	"github.com/solana-ai-terminal/backend/internal/model"
)

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}

// MakeAddress generates a valid base58 32-byte Solana address for testing.
//
// Example usage:
//
//	address := testutil.MakeAddress()
//	// Returns something like: "7rh8VZ2qhYBivrXsPv7AbLS7HV2cJ2FsPnLdyZ001anF"
func MakeAddress() string {
	buf := make([]byte, 32)
	//nolint:gosec // G404: Using math/rand for test data generation is acceptable
	_, _ = rand.Read(buf)
	return base58.Encode(buf)
}

// TokenBuilder provides a fluent interface for creating test tokens.
//
// Example usage:
//
//	// Simple creation with defaults
//	token := testutil.NewToken().Build(t, db)
//
//	// Customized token
//	token := testutil.NewToken().
//	    WithSymbol("WIF").
//	    WithMarketCap(250_000).
//	    Build(t, db)
type TokenBuilder struct {
	Address   string
	Symbol    string
	Name      string
	MarketCap float64
	PriceUsd  float64
	Supply    float64
}

// NewToken creates a TokenBuilder with sensible defaults.
func NewToken() *TokenBuilder {
	return &TokenBuilder{
		Address:   MakeAddress(),
		Symbol:    "TEST",
		Name:      "Test Token",
		MarketCap: 100_000,
		PriceUsd:  0.0001,
		Supply:    1_000_000_000,
	}
}

// WithAddress sets a custom address.
func (b *TokenBuilder) WithAddress(address string) *TokenBuilder {
	b.Address = address
	return b
}

// WithSymbol sets a custom symbol.
func (b *TokenBuilder) WithSymbol(symbol string) *TokenBuilder {
	b.Symbol = symbol
	return b
}

// WithName sets a custom name.
func (b *TokenBuilder) WithName(name string) *TokenBuilder {
	b.Name = name
	return b
}

// WithMarketCap sets the cached market cap.
func (b *TokenBuilder) WithMarketCap(marketCap float64) *TokenBuilder {
	b.MarketCap = marketCap
	return b
}

// Build inserts the token into the database and returns the model.
func (b *TokenBuilder) Build(t *testing.T, db *sql.DB) model.Token {
	t.Helper()

	token := model.Token{
		Address:   b.Address,
		Symbol:    b.Symbol,
		Name:      b.Name,
		MarketCap: b.MarketCap,
		PriceUsd:  b.PriceUsd,
		Supply:    b.Supply,
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.Exec(`
		INSERT INTO token (address, symbol, name, price_usd, market_cap, supply, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		token.Address, token.Symbol, token.Name,
		token.PriceUsd, token.MarketCap, token.Supply,
		token.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("Failed to insert test token: %v", err)
	}

	return token
}

// TradeBuilder provides a fluent interface for creating test trades.
//
// Example usage:
//
//	trade := testutil.NewTrade(token.Address).
//	    Sell().
//	    WithAmountSol(0.5).
//	    WithMarketCap(200_000).
//	    Build(t, db)
type TradeBuilder struct {
	ID           string
	TokenAddress string
	Type         string
	AmountSol    float64
	MarketCap    float64
	Date         int64
}

// NewTrade creates a TradeBuilder for a BUY with sensible defaults.
func NewTrade(tokenAddress string) *TradeBuilder {
	return &TradeBuilder{
		ID:           MakeID(),
		TokenAddress: tokenAddress,
		Type:         model.TradeTypeBuy,
		AmountSol:    1,
		MarketCap:    100_000,
		Date:         time.Now().UTC().UnixMilli(),
	}
}

// Sell marks the trade as a SELL.
func (b *TradeBuilder) Sell() *TradeBuilder {
	b.Type = model.TradeTypeSell
	return b
}

// WithAmountSol sets the SOL amount.
func (b *TradeBuilder) WithAmountSol(amount float64) *TradeBuilder {
	b.AmountSol = amount
	return b
}

// WithMarketCap sets the market cap at trade time.
func (b *TradeBuilder) WithMarketCap(marketCap float64) *TradeBuilder {
	b.MarketCap = marketCap
	return b
}

// WithDate sets the trade date in epoch milliseconds.
func (b *TradeBuilder) WithDate(date int64) *TradeBuilder {
	b.Date = date
	return b
}

// Build inserts the trade into the database and returns the model.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	trade := model.Trade{
		ID:           b.ID,
		TokenAddress: b.TokenAddress,
		Type:         b.Type,
		AmountSol:    b.AmountSol,
		MarketCap:    b.MarketCap,
		Date:         b.Date,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := db.Exec(`
		INSERT INTO trade (id, token_address, type, amount_sol, market_cap, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		trade.ID, trade.TokenAddress, trade.Type,
		trade.AmountSol, trade.MarketCap, trade.Date,
		trade.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("Failed to insert test trade: %v", err)
	}

	return trade
}
