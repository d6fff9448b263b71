package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/solana-ai-terminal/backend/internal/apperrors"
	"github.com/solana-ai-terminal/backend/internal/repository"
)

// geminiKeySetting is the system_setting key holding the encrypted Gemini API key.
const geminiKeySetting = "gemini_api_key"

// SettingsService manages runtime configuration stored in the database.
// Secrets are fernet-encrypted at rest; the fernet key itself comes from the
// environment and never touches the database.
type SettingsService struct {
	settingRepo *repository.SettingRepository
	fernetKey   *fernet.Key
	envAPIKey   string
}

// NewSettingsService creates a new SettingsService. fernetKey is the base64
// fernet key from configuration; envAPIKey is the GEMINI_API_KEY environment
// fallback used when no key has been stored.
func NewSettingsService(settingRepo *repository.SettingRepository, fernetKey, envAPIKey string) (*SettingsService, error) {
	var key *fernet.Key
	if fernetKey != "" {
		k, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("invalid fernet key: %w", err)
		}
		key = k
	}

	return &SettingsService{
		settingRepo: settingRepo,
		fernetKey:   key,
		envAPIKey:   envAPIKey,
	}, nil
}

// SetGeminiKey encrypts and stores the Gemini API key.
func (s *SettingsService) SetGeminiKey(ctx context.Context, apiKey string) error {
	if s.fernetKey == nil {
		return apperrors.ErrMissingAPIKey
	}

	token, err := fernet.EncryptAndSign([]byte(apiKey), s.fernetKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt api key: %w", err)
	}

	return s.settingRepo.Upsert(ctx, geminiKeySetting, string(token))
}

// GeminiKey returns the Gemini API key: the stored encrypted key when one
// exists and decrypts, otherwise the environment fallback. Returns
// apperrors.ErrMissingAPIKey when neither source yields a key.
func (s *SettingsService) GeminiKey(ctx context.Context) (string, error) {
	stored, err := s.settingRepo.Get(ctx, geminiKeySetting)
	if err != nil && !errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", err
	}

	if err == nil && s.fernetKey != nil {
		plain := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{s.fernetKey})
		if plain != nil {
			return string(plain), nil
		}
	}

	if s.envAPIKey != "" {
		return s.envAPIKey, nil
	}

	return "", apperrors.ErrMissingAPIKey
}
