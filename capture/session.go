package capture

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/camden-git/inspectsysbackend/media"
	"github.com/camden-git/inspectsysbackend/models"
	"github.com/camden-git/inspectsysbackend/services"
)

// Locator resolves the current device position. Implementations must honor
// the context deadline; results are never cached between calls
type Locator interface {
	Location(ctx context.Context) (models.GPSLocation, error)
}

// Options tunes a capture session's timing behaviour
type Options struct {
	LocationTimeout     time.Duration // per-capture geolocation budget
	AutoSaveTick        time.Duration // how often the auto-save loop wakes
	AutoSaveMinInterval time.Duration // minimum gap between persisted snapshots
}

// DefaultOptions mirror the intervals the capture UI has always used
func DefaultOptions() Options {
	return Options{
		LocationTimeout:     5 * time.Second,
		AutoSaveTick:        5 * time.Second,
		AutoSaveMinInterval: 30 * time.Second,
	}
}

// Session drives one in-progress inspection: it consumes capture callbacks,
// tracks the current step state, and periodically snapshots everything
// through the record store so an interrupted session can be resumed
type Session struct {
	ProjectID string

	store   *services.RecordService
	locator Locator
	opts    Options

	mu              sync.Mutex
	inspectionID    string
	photos          []models.Photo
	currentStep     int
	currentCategory string
	currentNote     string
	currentPhoto    string
	lastFlush       time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSession creates a session for a project. If an auto-save snapshot exists
// for the project it is restored, otherwise a fresh inspection ID is assigned
func NewSession(projectID string, store *services.RecordService, locator Locator, opts Options) *Session {
	s := &Session{
		ProjectID:   projectID,
		store:       store,
		locator:     locator,
		opts:        opts,
		currentStep: 1,
		stopChan:    make(chan struct{}),
	}

	if snap := store.GetAutoSave(projectID); snap != nil {
		s.inspectionID = snap.InspectionID
		s.photos = snap.Photos
		if snap.CurrentStep > 0 {
			s.currentStep = snap.CurrentStep
		}
		s.currentCategory = snap.CurrentCategory
		s.currentNote = snap.CurrentNote
		s.currentPhoto = snap.CurrentPhoto
		log.Printf("capture: resumed session for project %s at step %d", projectID, s.currentStep)
	}
	if s.inspectionID == "" {
		s.inspectionID = uuid.NewString()
	}
	return s
}

// Start launches the periodic auto-save loop
func (s *Session) Start() {
	s.wg.Add(1)
	go s.autoSaveLoop()
}

func (s *Session) autoSaveLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.opts.AutoSaveTick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.flush(false)
		case <-s.stopChan:
			return
		}
	}
}

// flush persists a snapshot unless the minimum interval since the last one
// has not yet elapsed. Auto-save is fire-and-forget and never surfaces errors
func (s *Session) flush(force bool) {
	s.mu.Lock()
	if !force && time.Since(s.lastFlush) < s.opts.AutoSaveMinInterval {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.lastFlush = time.Now()
	s.mu.Unlock()

	s.store.SaveAutoSave(snap)
}

func (s *Session) snapshotLocked() *models.AutoSaveSnapshot {
	photos := make([]models.Photo, len(s.photos))
	copy(photos, s.photos)
	return &models.AutoSaveSnapshot{
		ProjectID:       s.ProjectID,
		InspectionID:    s.inspectionID,
		Photos:          photos,
		CurrentStep:     s.currentStep,
		CurrentCategory: s.currentCategory,
		CurrentNote:     s.currentNote,
		CurrentPhoto:    s.currentPhoto,
	}
}

// Snapshot returns the session's current auto-save state
func (s *Session) Snapshot() *models.AutoSaveSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Stop halts the auto-save loop and writes one final best-effort snapshot,
// the equivalent of a teardown hook. A write racing process exit is an
// accepted data-loss window
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	s.flush(true)
}

// SetStep records the UI step the user is on
func (s *Session) SetStep(step int) {
	s.mu.Lock()
	s.currentStep = step
	s.mu.Unlock()
}

// SetCategory selects the category applied to subsequent captures
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	s.currentCategory = category
	s.mu.Unlock()
}

// SetNote records the in-progress note applied to subsequent captures
func (s *Session) SetNote(note string) {
	s.mu.Lock()
	s.currentNote = note
	s.mu.Unlock()
}

// OnCapture consumes one camera capture plus its compass heading, resolves
// the device position, builds the Photo record and saves it through the
// record store. The photo ID is derived from the capture instant
func (s *Session) OnCapture(imageData string, heading models.Compass) (*models.Photo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.LocationTimeout)
	defer cancel()

	loc, err := s.locator.Location(ctx)
	if err != nil {
		// fall back to EXIF coordinates embedded in the capture, if any
		loc, err = s.locationFromExif(imageData, err)
		if err != nil {
			return nil, fmt.Errorf("failed to get location: %w", err)
		}
	}

	if heading.Direction == "" {
		heading.Direction = DirectionFromDegrees(heading.Degrees)
	}

	s.mu.Lock()
	category := s.currentCategory
	note := s.currentNote
	s.mu.Unlock()
	if category == "" {
		category = models.CategoryOverview
	}

	now := time.Now()
	photo := &models.Photo{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		ProjectID:   s.ProjectID,
		URI:         imageData,
		Category:    category,
		Notes:       note,
		GPSLocation: loc,
		Compass:     &heading,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}

	if err := s.store.SavePhoto(s.ProjectID, photo); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.photos = append(s.photos, *photo)
	s.currentPhoto = photo.ID
	s.mu.Unlock()

	return photo, nil
}

func (s *Session) locationFromExif(imageData string, locErr error) (models.GPSLocation, error) {
	raw, _, err := media.DecodeDataURI(imageData)
	if err != nil {
		return models.GPSLocation{}, locErr
	}
	exifLoc, err := media.ExtractGPS(raw)
	if err != nil {
		return models.GPSLocation{}, locErr
	}
	log.Printf("capture: geolocation unavailable (%v), using EXIF position", locErr)
	return *exifLoc, nil
}
