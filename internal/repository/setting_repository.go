package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/solana-ai-terminal/backend/internal/apperrors"
)

// SettingRepository provides data access methods for the system_setting table,
// a small key/value store for runtime configuration such as the encrypted
// Gemini API key.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the stored value for key, or apperrors.ErrSettingNotFound.
func (s *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM system_setting WHERE "key" = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query system_setting table: %w", err)
	}
	return value, nil
}

// Upsert stores value under key, replacing any previous value.
func (s *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		uuid.New().String(), key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to upsert system_setting: %w", err)
	}

	return nil
}
