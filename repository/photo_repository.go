package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/inspectsysbackend/models"
)

// PhotoRepository handles database operations for Photo entities
type PhotoRepository struct {
	DB *gorm.DB
}

// NewPhotoRepository creates a new instance of PhotoRepository
func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{DB: db}
}

// Save upserts a photo record keyed by (project_id, id). Re-saving an
// existing photo replaces every mutable field wholesale
func (r *PhotoRepository) Save(photo *models.Photo) error {
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "id"}},
		UpdateAll: true,
	}).Create(photo).Error
	if err != nil {
		return fmt.Errorf("failed to save photo %s for project %s: %w", photo.ID, photo.ProjectID, err)
	}
	return nil
}

// Get retrieves a single photo, returning nil without error when absent
func (r *PhotoRepository) Get(projectID, photoID string) (*models.Photo, error) {
	var photo models.Photo
	err := r.DB.Where("project_id = ? AND id = ?", projectID, photoID).First(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo %s for project %s: %w", photoID, projectID, err)
	}
	return &photo, nil
}

// ListByProject returns all photos for a project ordered by ascending
// capture timestamp
func (r *PhotoRepository) ListByProject(projectID string) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.DB.Where("project_id = ?", projectID).
		Order("timestamp ASC").
		Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos for project %s: %w", projectID, err)
	}
	return photos, nil
}

// Delete removes a single photo record. Deleting a photo that does not exist
// is not an error; the operation is idempotent
func (r *PhotoRepository) Delete(projectID, photoID string) error {
	err := r.DB.Where("project_id = ? AND id = ?", projectID, photoID).
		Delete(&models.Photo{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete photo %s for project %s: %w", photoID, projectID, err)
	}
	return nil
}
