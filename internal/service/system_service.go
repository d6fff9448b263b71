package service

import (
	"database/sql"
	"strconv"

	"github.com/solana-ai-terminal/backend/internal/database"
	"github.com/solana-ai-terminal/backend/internal/model"
	"github.com/solana-ai-terminal/backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	features map[string]bool
}

// NewSystemService creates a new SystemService. features flags which optional
// subsystems (AI analysis, wallet RPC) are configured.
func NewSystemService(db *sql.DB, features map[string]bool) *SystemService {
	return &SystemService{
		db:       db,
		features: features,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the app version, database schema version and the
// enabled feature flags.
func (s *SystemService) CheckVersion() model.VersionInfo {
	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  "unknown",
		Features:   s.features,
	}

	if schema, err := database.SchemaVersion(s.db); err == nil {
		info.DbVersion = strconv.FormatInt(schema, 10)
	}

	return info
}
