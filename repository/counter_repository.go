package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/inspectsysbackend/models"
)

// counterColumns maps issuing categories to their counter column
var counterColumns = map[string]string{
	models.CategoryDefect: "defect_counter",
	models.CategoryRisk:   "risk_counter",
}

// CounterRepository handles database operations for per-project reference
// counters. Counter rows are created lazily and never deleted
type CounterRepository struct {
	DB *gorm.DB
}

// NewCounterRepository creates a new instance of CounterRepository
func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{DB: db}
}

// Increment advances the counter for (projectID, category) by exactly 1 and
// returns the new value. The read-modify-write runs inside a transaction with
// an in-database increment expression, so a lost update cannot occur even if
// callers fail to serialize
func (r *CounterRepository) Increment(projectID, category string) (int, error) {
	column, ok := counterColumns[category]
	if !ok {
		return 0, fmt.Errorf("no reference counter exists for category %q", category)
	}

	var value int
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		counter := models.ReferenceCounter{ProjectID: projectID}
		if err := tx.Where(models.ReferenceCounter{ProjectID: projectID}).
			FirstOrCreate(&counter).Error; err != nil {
			return fmt.Errorf("failed to ensure counter row for project %s: %w", projectID, err)
		}

		if err := tx.Model(&models.ReferenceCounter{}).
			Where("project_id = ?", projectID).
			Update(column, gorm.Expr(column+" + 1")).Error; err != nil {
			return fmt.Errorf("failed to increment %s for project %s: %w", column, projectID, err)
		}

		var updated models.ReferenceCounter
		if err := tx.First(&updated, "project_id = ?", projectID).Error; err != nil {
			return fmt.Errorf("failed to read back counter for project %s: %w", projectID, err)
		}

		if category == models.CategoryDefect {
			value = updated.DefectCounter
		} else {
			value = updated.RiskCounter
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Get retrieves a project's counter row, returning nil without error when
// no reference ID has ever been issued for the project
func (r *CounterRepository) Get(projectID string) (*models.ReferenceCounter, error) {
	var counter models.ReferenceCounter
	err := r.DB.First(&counter, "project_id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reference counters for project %s: %w", projectID, err)
	}
	return &counter, nil
}
