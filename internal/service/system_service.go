package service

import (
	"database/sql"
	"maps"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/apperrors"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/database"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	features map[string]bool
}

// NewSystemService creates a new SystemService. db is nil when persistence is disabled.
func NewSystemService(db *sql.DB, features map[string]bool) *SystemService {
	return &SystemService{
		db:       db,
		features: features,
	}
}

// PersistenceEnabled reports whether a durable database is configured
func (s *SystemService) PersistenceEnabled() bool {
	return s.db != nil
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	if s.db == nil {
		return apperrors.ErrPersistenceUnavailable
	}
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version and enabled features
func (s *SystemService) CheckVersion() (*model.VersionInfo, error) {
	features := make(map[string]bool, len(s.features)+1)
	maps.Copy(features, s.features)
	features["persistence"] = s.PersistenceEnabled()

	return &model.VersionInfo{
		AppVersion: version.Version,
		Features:   features,
	}, nil
}
