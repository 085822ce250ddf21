package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/inspectsysbackend/models"
)

// DraftRepository handles database operations for the inspection drafts list
type DraftRepository struct {
	DB *gorm.DB
}

// NewDraftRepository creates a new instance of DraftRepository
func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{DB: db}
}

// Upsert replaces an existing draft with the same ID or appends a new one
func (r *DraftRepository) Upsert(insp *models.Inspection) error {
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(insp).Error
	if err != nil {
		return fmt.Errorf("failed to upsert inspection draft %s: %w", insp.ID, err)
	}
	return nil
}

// GetByID retrieves a draft, returning nil without error when absent
func (r *DraftRepository) GetByID(id string) (*models.Inspection, error) {
	var insp models.Inspection
	err := r.DB.First(&insp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inspection draft %s: %w", id, err)
	}
	return &insp, nil
}

// ListAll returns every persisted inspection record
func (r *DraftRepository) ListAll() ([]models.Inspection, error) {
	var drafts []models.Inspection
	if err := r.DB.Find(&drafts).Error; err != nil {
		return nil, fmt.Errorf("failed to list inspection drafts: %w", err)
	}
	return drafts, nil
}

// Delete removes a draft by ID
func (r *DraftRepository) Delete(id string) error {
	if err := r.DB.Delete(&models.Inspection{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete inspection draft %s: %w", id, err)
	}
	return nil
}
