package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/camden-git/inspectsysbackend/media"
	"github.com/camden-git/inspectsysbackend/models"
	"github.com/camden-git/inspectsysbackend/repository"
	"github.com/camden-git/inspectsysbackend/validation"
)

// BackupQueue receives saved photos for best-effort mirroring to local disk
// and removes the mirrored copy when a photo is deleted. Implementations must
// never block the save or delete paths
type BackupQueue interface {
	QueuePhoto(photo models.Photo) bool
	RemoveBackup(projectID, photoID string)
}

// RecordService is the persistence facade for photos, drafts, auto-save
// snapshots, cached projects and user preferences. It exclusively owns every
// persisted record; nothing else writes to the store.
//
// Critical paths (SavePhoto, RemovePhoto, SaveDraft) fail loud with typed
// errors. Read paths and auto-save are fail-soft: they log and return empty
// results so a storage hiccup never takes the capture flow down with it
type RecordService struct {
	photos   repository.PhotoRepositoryInterface
	drafts   repository.DraftRepositoryInterface
	autosave repository.AutoSaveRepositoryInterface
	projects repository.ProjectRepositoryInterface
	prefs    repository.PreferencesRepositoryInterface
	refs     *ReferenceService

	backups BackupQueue // optional
}

// NewRecordService wires a RecordService over a GORM database handle
func NewRecordService(db *gorm.DB) *RecordService {
	counters := repository.NewCounterRepository(db)
	return &RecordService{
		photos:   repository.NewPhotoRepository(db),
		drafts:   repository.NewDraftRepository(db),
		autosave: repository.NewAutoSaveRepository(db),
		projects: repository.NewProjectRepository(db),
		prefs:    repository.NewPreferencesRepository(db),
		refs:     NewReferenceService(counters),
	}
}

// SetBackupQueue attaches the worker pool that mirrors saved photos to disk
func (s *RecordService) SetBackupQueue(q BackupQueue) {
	s.backups = q
}

// References exposes the reference-ID issuer
func (s *RecordService) References() *ReferenceService {
	return s.refs
}

// SavePhoto persists one photo for a project. Defect and Risk photos without
// a reference ID get one issued exactly once, before the write; the ID is
// never reassigned on later saves. When the configured compression quality is
// below 1 and the payload is inline, the image is re-encoded before storage
func (s *RecordService) SavePhoto(projectID string, photo *models.Photo) error {
	// the caller-supplied project keys persistence and issuance; a stale
	// project_id in the body must not split the photo from its counter
	photo.ProjectID = projectID

	if photo.NeedsReferenceID() {
		_, ref, err := s.refs.Next(projectID, photo.Category)
		if err != nil {
			return &PersistenceError{Op: "save photo", Err: err}
		}
		photo.ReferenceID = &ref
	}

	prefs := s.GetPreferences()
	if q := prefs.Storage.CompressionQuality; q > 0 && q < 1 && media.IsInlineImage(photo.URI) {
		compressed, err := media.CompressDataURI(photo.URI, q)
		if err != nil {
			// *media.CompressionError; propagates uncaught to the caller
			return err
		}
		photo.URI = compressed
	}

	if err := s.photos.Save(photo); err != nil {
		return &PersistenceError{Op: "save photo", Err: err}
	}

	if s.backups != nil && prefs.Storage.AutoBackup && media.IsInlineImage(photo.URI) {
		s.backups.QueuePhoto(*photo)
	}
	return nil
}

// GetPhotos returns the project's photos ordered by ascending capture time.
// Fail-soft: a scan failure is logged and yields an empty list
func (s *RecordService) GetPhotos(projectID string) []models.Photo {
	photos, err := s.photos.ListByProject(projectID)
	if err != nil {
		log.Printf("ERROR reading photos for project %s: %v", projectID, err)
		return []models.Photo{}
	}
	if photos == nil {
		return []models.Photo{}
	}
	return photos
}

// GetPhoto retrieves one photo, or ErrPhotoNotFound
func (s *RecordService) GetPhoto(projectID, photoID string) (*models.Photo, error) {
	photo, err := s.photos.Get(projectID, photoID)
	if err != nil {
		return nil, &PersistenceError{Op: "get photo", Err: err}
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}
	return photo, nil
}

// RemovePhoto deletes exactly the targeted photo along with its disk backup.
// The project's reference counters are untouched: issued numbers are never
// reclaimed
func (s *RecordService) RemovePhoto(projectID, photoID string) error {
	if err := s.photos.Delete(projectID, photoID); err != nil {
		return &PersistenceError{Op: "remove photo", Err: err}
	}
	if s.backups != nil {
		s.backups.RemoveBackup(projectID, photoID)
	}
	return nil
}

// ReplaceAnnotations swaps a photo's annotation list wholesale (no merge)
// and re-persists the photo through the save path
func (s *RecordService) ReplaceAnnotations(projectID, photoID string, annotations []models.Annotation) (*models.Photo, error) {
	photo, err := s.GetPhoto(projectID, photoID)
	if err != nil {
		return nil, err
	}
	photo.Annotations = annotations
	if err := s.SavePhoto(projectID, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// SaveDraft validates the inspection against the draft schema and upserts it
// into the drafts list. ValidationError enumerates every violated field and
// leaves the store unchanged
func (s *RecordService) SaveDraft(insp *models.Inspection) error {
	if errs := validation.ValidateInspection(insp); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	if err := s.drafts.Upsert(insp); err != nil {
		return &PersistenceError{Op: "save draft", Err: err}
	}
	return nil
}

// GetDrafts returns the persisted drafts list. Fail-soft: read failures are
// logged and yield an empty list
func (s *RecordService) GetDrafts() []models.Inspection {
	drafts, err := s.drafts.ListAll()
	if err != nil {
		log.Printf("ERROR reading inspection drafts: %v", err)
		return []models.Inspection{}
	}
	if drafts == nil {
		return []models.Inspection{}
	}
	return drafts
}

// CompleteInspection marks a draft completed, persists it and clears the
// project's auto-save slot
func (s *RecordService) CompleteInspection(id string) (*models.Inspection, error) {
	insp, err := s.drafts.GetByID(id)
	if err != nil {
		return nil, &PersistenceError{Op: "complete inspection", Err: err}
	}
	if insp == nil {
		return nil, ErrDraftNotFound
	}

	insp.Status = models.StatusCompleted
	insp.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.drafts.Upsert(insp); err != nil {
		return nil, &PersistenceError{Op: "complete inspection", Err: err}
	}

	s.ClearAutoSave(insp.ProjectID)
	return insp, nil
}

// SaveAutoSave writes the project's snapshot slot. Fire-and-forget: failures
// are logged and swallowed, callers must not depend on this succeeding
func (s *RecordService) SaveAutoSave(snap *models.AutoSaveSnapshot) {
	if err := s.autosave.Put(snap); err != nil {
		log.Printf("ERROR auto-save failed for project %s: %v", snap.ProjectID, err)
	}
}

// GetAutoSave reads the project's snapshot slot. Fail-soft: returns nil on
// read failure or when no snapshot exists
func (s *RecordService) GetAutoSave(projectID string) *models.AutoSaveSnapshot {
	snap, err := s.autosave.Get(projectID)
	if err != nil {
		log.Printf("ERROR reading auto-save for project %s: %v", projectID, err)
		return nil
	}
	return snap
}

// GetLatestAutoSave returns the most recently written snapshot across all
// projects, for the resume prompt. Fail-soft
func (s *RecordService) GetLatestAutoSave() *models.AutoSaveSnapshot {
	snap, err := s.autosave.Latest()
	if err != nil {
		log.Printf("ERROR reading latest auto-save: %v", err)
		return nil
	}
	return snap
}

// ClearAutoSave deletes the project's snapshot slot. Fail-soft
func (s *RecordService) ClearAutoSave(projectID string) {
	if err := s.autosave.Delete(projectID); err != nil {
		log.Printf("ERROR clearing auto-save for project %s: %v", projectID, err)
	}
}

// CacheProjects replaces the cached project list. Fail-soft: the cache is a
// read-path convenience and losing a refresh only forces a refetch
func (s *RecordService) CacheProjects(projects []models.Project) {
	if err := s.projects.ReplaceAll(projects); err != nil {
		log.Printf("ERROR caching projects: %v", err)
	}
}

// GetCachedProjects returns the cached project summaries. Fail-soft
func (s *RecordService) GetCachedProjects() []models.Project {
	projects, err := s.projects.ListAll()
	if err != nil {
		log.Printf("ERROR reading cached projects: %v", err)
		return []models.Project{}
	}
	if projects == nil {
		return []models.Project{}
	}
	return projects
}

// GetPreferences returns the stored preferences, falling back to the
// installation defaults before first run or on read failure
func (s *RecordService) GetPreferences() models.UserPreferences {
	prefs, err := s.prefs.Get()
	if err != nil {
		log.Printf("ERROR reading preferences, using defaults: %v", err)
		return models.DefaultPreferences()
	}
	if prefs == nil {
		return models.DefaultPreferences()
	}
	return *prefs
}

// EnsurePreferences persists the defaults on first run so later reads and
// updates always find a row
func (s *RecordService) EnsurePreferences() error {
	existing, err := s.prefs.Get()
	if err != nil {
		return &PersistenceError{Op: "ensure preferences", Err: err}
	}
	if existing != nil {
		return nil
	}
	defaults := models.DefaultPreferences()
	if err := s.prefs.Put(&defaults); err != nil {
		return &PersistenceError{Op: "ensure preferences", Err: err}
	}
	return nil
}

// UpdatePreferences overwrites the preferences record. Automatic backup is
// always enforced regardless of the submitted value
func (s *RecordService) UpdatePreferences(updated models.UserPreferences) (models.UserPreferences, error) {
	updated.ID = models.PreferencesID
	updated.Storage.AutoBackup = true
	if err := s.prefs.Put(&updated); err != nil {
		return models.UserPreferences{}, &PersistenceError{Op: "update preferences", Err: err}
	}
	return updated, nil
}
