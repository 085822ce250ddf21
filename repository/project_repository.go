package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/inspectsysbackend/models"
)

// ProjectRepository handles database operations for the cached project list
type ProjectRepository struct {
	DB *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

// ReplaceAll swaps the entire cached project list in one transaction
func (r *ProjectRepository) ReplaceAll(projects []models.Project) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Project{}).Error; err != nil {
			return fmt.Errorf("failed to clear cached projects: %w", err)
		}
		if len(projects) == 0 {
			return nil
		}
		if err := tx.Create(&projects).Error; err != nil {
			return fmt.Errorf("failed to write cached projects: %w", err)
		}
		return nil
	})
	return err
}

// ListAll returns every cached project summary
func (r *ProjectRepository) ListAll() ([]models.Project, error) {
	var projects []models.Project
	if err := r.DB.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list cached projects: %w", err)
	}
	return projects, nil
}
