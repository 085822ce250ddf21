package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/inspectsysbackend/models"
)

// AutoSaveRepository handles database operations for auto-save snapshots,
// one slot per project
type AutoSaveRepository struct {
	DB *gorm.DB
}

// NewAutoSaveRepository creates a new instance of AutoSaveRepository
func NewAutoSaveRepository(db *gorm.DB) *AutoSaveRepository {
	return &AutoSaveRepository{DB: db}
}

// Put overwrites the project's snapshot slot
func (r *AutoSaveRepository) Put(snap *models.AutoSaveSnapshot) error {
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		UpdateAll: true,
	}).Create(snap).Error
	if err != nil {
		return fmt.Errorf("failed to write auto-save snapshot for project %s: %w", snap.ProjectID, err)
	}
	return nil
}

// Get retrieves the project's snapshot, returning nil without error when absent
func (r *AutoSaveRepository) Get(projectID string) (*models.AutoSaveSnapshot, error) {
	var snap models.AutoSaveSnapshot
	err := r.DB.First(&snap, "project_id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read auto-save snapshot for project %s: %w", projectID, err)
	}
	return &snap, nil
}

// Latest returns the most recently written snapshot across all projects,
// or nil when none exists. Used to offer a resume prompt on startup
func (r *AutoSaveRepository) Latest() (*models.AutoSaveSnapshot, error) {
	var snap models.AutoSaveSnapshot
	err := r.DB.Order("updated_at DESC").First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest auto-save snapshot: %w", err)
	}
	return &snap, nil
}

// Delete clears the project's snapshot slot; missing slots are not an error
func (r *AutoSaveRepository) Delete(projectID string) error {
	err := r.DB.Delete(&models.AutoSaveSnapshot{}, "project_id = ?", projectID).Error
	if err != nil {
		return fmt.Errorf("failed to clear auto-save snapshot for project %s: %w", projectID, err)
	}
	return nil
}
