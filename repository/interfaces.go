package repository

import (
	"github.com/camden-git/inspectsysbackend/models"
)

// PhotoRepositoryInterface defines the methods for photo data operations
type PhotoRepositoryInterface interface {
	Save(photo *models.Photo) error
	Get(projectID, photoID string) (*models.Photo, error)
	ListByProject(projectID string) ([]models.Photo, error)
	Delete(projectID, photoID string) error
}

// DraftRepositoryInterface defines the methods for inspection draft operations
type DraftRepositoryInterface interface {
	Upsert(insp *models.Inspection) error
	GetByID(id string) (*models.Inspection, error)
	ListAll() ([]models.Inspection, error)
	Delete(id string) error
}

// AutoSaveRepositoryInterface defines the methods for auto-save snapshot operations
type AutoSaveRepositoryInterface interface {
	Put(snap *models.AutoSaveSnapshot) error
	Get(projectID string) (*models.AutoSaveSnapshot, error)
	Latest() (*models.AutoSaveSnapshot, error)
	Delete(projectID string) error
}

// CounterRepositoryInterface defines the methods for reference counter operations
type CounterRepositoryInterface interface {
	Increment(projectID, category string) (int, error)
	Get(projectID string) (*models.ReferenceCounter, error)
}

// PreferencesRepositoryInterface defines the methods for the preferences singleton
type PreferencesRepositoryInterface interface {
	Get() (*models.UserPreferences, error)
	Put(prefs *models.UserPreferences) error
}

// ProjectRepositoryInterface defines the methods for the cached project list
type ProjectRepositoryInterface interface {
	ReplaceAll(projects []models.Project) error
	ListAll() ([]models.Project, error)
}
