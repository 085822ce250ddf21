package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/inspectsysbackend/models"
)

// PreferencesRepository handles database operations for the singleton
// user preferences record
type PreferencesRepository struct {
	DB *gorm.DB
}

// NewPreferencesRepository creates a new instance of PreferencesRepository
func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{DB: db}
}

// Get retrieves the preferences row, returning nil without error before
// first run
func (r *PreferencesRepository) Get() (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := r.DB.First(&prefs, "id = ?", models.PreferencesID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}
	return &prefs, nil
}

// Put overwrites the singleton preferences row
func (r *PreferencesRepository) Put(prefs *models.UserPreferences) error {
	prefs.ID = models.PreferencesID
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(prefs).Error
	if err != nil {
		return fmt.Errorf("failed to save user preferences: %w", err)
	}
	return nil
}
