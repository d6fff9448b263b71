package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/solana-ai-terminal/backend/internal/model"
)

// TradeRepository provides data access methods for the trade table.
// It handles the append-only buy/sell history backing each position.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// GetTradesByToken retrieves all trades for a token address in replay order:
// ascending by trade date, ties resolved by insertion order. PnL attribution
// is order-sensitive, so this ordering is part of the contract.
func (s *TradeRepository) GetTradesByToken(address string) ([]model.Trade, error) {
	query := `
		SELECT id, token_address, type, amount_sol, market_cap, date, created_at
		FROM trade
		WHERE token_address = ?
		ORDER BY date ASC, rowid ASC
	`

	rows, err := s.db.Query(query, address)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}

	for rows.Next() {
		var t model.Trade
		var createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.TokenAddress,
			&t.Type,
			&t.AmountSol,
			&t.MarketCap,
			&t.Date,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

// InsertTrade appends a trade to its position's history.
func (s *TradeRepository) InsertTrade(ctx context.Context, t *model.Trade) error {
	query := `
		INSERT INTO trade (id, token_address, type, amount_sol, market_cap, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.TokenAddress,
		t.Type,
		t.AmountSol,
		t.MarketCap,
		t.Date,
		t.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

// DeleteTrade removes exactly one trade by id, scoped to the token address so
// a stale id cannot delete another position's record. The return value
// reports whether a row existed.
func (s *TradeRepository) DeleteTrade(ctx context.Context, address, tradeID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM trade WHERE token_address = ? AND id = ?`, address, tradeID)
	if err != nil {
		return false, fmt.Errorf("failed to delete trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected > 0, nil
}
