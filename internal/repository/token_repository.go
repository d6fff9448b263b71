package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/model"
)

// TokenRepository provides data access methods for the token table.
// It handles the tracked-token watchlist and its cached market data.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new TokenRepository with the provided database connection.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetTokens retrieves all tracked tokens in insertion order.
// Returns an empty slice when nothing is tracked.
func (s *TokenRepository) GetTokens() ([]model.Token, error) {
	query := `
		SELECT address, symbol, name, image_url, price_usd, price_change_24h,
		       market_cap, supply, last_analyzed, ai_verdict, created_at
		FROM token
		ORDER BY rowid ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query token table: %w", err)
	}
	defer rows.Close()

	tokens := []model.Token{}

	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating token table: %w", err)
	}

	return tokens, nil
}

// GetToken retrieves a single tracked token by address.
// Returns apperrors.ErrTokenNotFound when the address is not tracked.
func (s *TokenRepository) GetToken(address string) (model.Token, error) {
	query := `
		SELECT address, symbol, name, image_url, price_usd, price_change_24h,
		       market_cap, supply, last_analyzed, ai_verdict, created_at
		FROM token
		WHERE address = ?
	`

	row := s.db.QueryRow(query, address)
	t, err := scanToken(row)
	if err == sql.ErrNoRows {
		return model.Token{}, apperrors.ErrTokenNotFound
	}
	if err != nil {
		return model.Token{}, err
	}

	return t, nil
}

// Exists reports whether a token address is tracked.
func (s *TokenRepository) Exists(address string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM token WHERE address = ?`, address).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query token table: %w", err)
	}
	return true, nil
}

// InsertToken inserts a new tracked token. The insert is a no-op when the
// address is already tracked; the return value reports whether a row was
// actually written, which is the ledger's deduplication guard.
func (s *TokenRepository) InsertToken(t *model.Token) (bool, error) {
	query := `
		INSERT INTO token (address, symbol, name, image_url, price_usd,
		                   price_change_24h, market_cap, supply, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(address) DO NOTHING
	`

	result, err := s.db.Exec(query,
		t.Address,
		t.Symbol,
		t.Name,
		t.ImageURL,
		t.PriceUsd,
		t.PriceChange24h,
		t.MarketCap,
		t.Supply,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return affected > 0, nil
}

// DeleteToken removes a tracked token. Trades cascade via the schema.
// The return value reports whether a row existed.
func (s *TokenRepository) DeleteToken(address string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM token WHERE address = ?`, address)
	if err != nil {
		return false, fmt.Errorf("failed to delete token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected > 0, nil
}

// UpdateMarketData refreshes the cached market columns for a tracked token.
// Missing feed fields are written as zero; readers apply their own fallbacks.
func (s *TokenRepository) UpdateMarketData(address string, md model.MarketData) error {
	query := `
		UPDATE token
		SET price_usd = ?, price_change_24h = ?, market_cap = ?, supply = ?
		WHERE address = ?
	`

	if _, err := s.db.Exec(query, md.Price, md.PriceChange24h, md.MarketCap, md.Supply, address); err != nil {
		return fmt.Errorf("failed to update market data: %w", err)
	}

	return nil
}

// UpdateAnalysis records the latest AI verdict and analysis timestamp.
func (s *TokenRepository) UpdateAnalysis(address, verdict string, analyzedAt time.Time) error {
	query := `
		UPDATE token
		SET ai_verdict = ?, last_analyzed = ?
		WHERE address = ?
	`

	if _, err := s.db.Exec(query, verdict, analyzedAt.UTC().Format(time.RFC3339), address); err != nil {
		return fmt.Errorf("failed to update analysis: %w", err)
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanToken.
type scanner interface {
	Scan(dest ...any) error
}

func scanToken(row scanner) (model.Token, error) {
	var t model.Token
	var imageURL, lastAnalyzedStr, verdict sql.NullString
	var createdAtStr string

	err := row.Scan(
		&t.Address,
		&t.Symbol,
		&t.Name,
		&imageURL,
		&t.PriceUsd,
		&t.PriceChange24h,
		&t.MarketCap,
		&t.Supply,
		&lastAnalyzedStr,
		&verdict,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Token{}, err
	}
	if err != nil {
		return model.Token{}, fmt.Errorf("failed to scan token table results: %w", err)
	}

	if imageURL.Valid {
		t.ImageURL = imageURL.String
	}
	if verdict.Valid {
		t.AIVerdict = &verdict.String
	}
	if lastAnalyzedStr.Valid {
		analyzed, err := ParseTime(lastAnalyzedStr.String)
		if err != nil {
			return model.Token{}, err
		}
		t.LastAnalyzed = &analyzed
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Token{}, err
	}

	return t, nil
}
