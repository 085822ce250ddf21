package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/inspectsysbackend/media"
	"github.com/camden-git/inspectsysbackend/models"
)

type recordingQueue struct {
	queued  []models.Photo
	removed []string
}

func (q *recordingQueue) QueuePhoto(photo models.Photo) bool {
	q.queued = append(q.queued, photo)
	return true
}

func (q *recordingQueue) RemoveBackup(projectID, photoID string) {
	q.removed = append(q.removed, projectID+"/"+photoID)
}

func testPhoto(id, category string) *models.Photo {
	return &models.Photo{
		ID:        id,
		ProjectID: "p1",
		URI:       "file:///photos/" + id + ".jpg",
		Category:  category,
		GPSLocation: models.GPSLocation{
			Latitude:  51.5072,
			Longitude: -0.1276,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func testDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 120, G: 120, B: 120, A: 255}}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return media.EncodeDataURI(buf.Bytes(), "image/png")
}

func TestSavePhoto_IssuesReferenceIDs(t *testing.T) {
	svc := NewRecordService(openTestDB(t))
	year := time.Now().Year()

	first := testPhoto("1", models.CategoryDefect)
	require.NoError(t, svc.SavePhoto("p1", first))
	require.NotNil(t, first.ReferenceID)
	assert.Equal(t, fmt.Sprintf("DEF-%d-001", year), *first.ReferenceID)

	second := testPhoto("2", models.CategoryDefect)
	require.NoError(t, svc.SavePhoto("p1", second))
	assert.Equal(t, fmt.Sprintf("DEF-%d-002", year), *second.ReferenceID)

	risk := testPhoto("3", models.CategoryRisk)
	require.NoError(t, svc.SavePhoto("p1", risk))
	assert.Equal(t, fmt.Sprintf("RISK-%d-001", year), *risk.ReferenceID)

	overview := testPhoto("4", models.CategoryOverview)
	require.NoError(t, svc.SavePhoto("p1", overview))
	assert.Nil(t, overview.ReferenceID)
}

func TestSavePhoto_KeysByCallerProject(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	// a stale project_id in the record must not split the photo from the
	// counter that issued its reference ID
	photo := testPhoto("1", models.CategoryDefect)
	photo.ProjectID = "p2"
	require.NoError(t, svc.SavePhoto("p1", photo))

	assert.Equal(t, "p1", photo.ProjectID)
	require.Len(t, svc.GetPhotos("p1"), 1)
	assert.Empty(t, svc.GetPhotos("p2"))

	// the consumed number belongs to p1; p2's sequence is untouched
	value, _, err := svc.References().Next("p1", models.CategoryDefect)
	require.NoError(t, err)
	assert.Equal(t, 2, value)
	value, _, err = svc.References().Next("p2", models.CategoryDefect)
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestSavePhoto_ReferenceIDIssuedAtMostOnce(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	photo := testPhoto("1", models.CategoryDefect)
	require.NoError(t, svc.SavePhoto("p1", photo))
	issued := *photo.ReferenceID

	// re-saving the same photo must not consume another number
	photo.Notes = "edited"
	require.NoError(t, svc.SavePhoto("p1", photo))
	assert.Equal(t, issued, *photo.ReferenceID)

	next := testPhoto("2", models.CategoryDefect)
	require.NoError(t, svc.SavePhoto("p1", next))
	assert.Equal(t, fmt.Sprintf("DEF-%d-002", time.Now().Year()), *next.ReferenceID)
}

func TestSavePhoto_CompressesInlinePayload(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	photo := testPhoto("1", models.CategoryOverview)
	photo.URI = testDataURI(t)
	require.NoError(t, svc.SavePhoto("p1", photo))

	// default quality is 0.8, so the inline payload is re-encoded as JPEG
	assert.True(t, strings.HasPrefix(photo.URI, "data:image/jpeg;base64,"))

	stored := svc.GetPhotos("p1")
	require.Len(t, stored, 1)
	assert.Equal(t, photo.URI, stored[0].URI)
}

func TestSavePhoto_LeavesExternalURIAlone(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	photo := testPhoto("1", models.CategoryOverview)
	require.NoError(t, svc.SavePhoto("p1", photo))
	assert.Equal(t, "file:///photos/1.jpg", photo.URI)
}

func TestSavePhoto_RejectsUndecodableInlinePayload(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	photo := testPhoto("1", models.CategoryOverview)
	photo.URI = media.EncodeDataURI([]byte("not an image"), "image/png")
	err := svc.SavePhoto("p1", photo)
	require.Error(t, err)
	var compErr *media.CompressionError
	assert.ErrorAs(t, err, &compErr)
	assert.Empty(t, svc.GetPhotos("p1"))
}

func TestSavePhoto_EnqueuesBackupForInlinePayloads(t *testing.T) {
	svc := NewRecordService(openTestDB(t))
	queue := &recordingQueue{}
	svc.SetBackupQueue(queue)

	inline := testPhoto("1", models.CategoryOverview)
	inline.URI = testDataURI(t)
	require.NoError(t, svc.SavePhoto("p1", inline))

	external := testPhoto("2", models.CategoryOverview)
	require.NoError(t, svc.SavePhoto("p1", external))

	require.Len(t, queue.queued, 1)
	assert.Equal(t, "1", queue.queued[0].ID)
}

func TestRemovePhoto_DoesNotReclaimReferenceNumbers(t *testing.T) {
	svc := NewRecordService(openTestDB(t))
	year := time.Now().Year()

	first := testPhoto("1", models.CategoryDefect)
	require.NoError(t, svc.SavePhoto("p1", first))
	require.NoError(t, svc.RemovePhoto("p1", "1"))
	assert.Empty(t, svc.GetPhotos("p1"))

	second := testPhoto("2", models.CategoryDefect)
	require.NoError(t, svc.SavePhoto("p1", second))
	assert.Equal(t, fmt.Sprintf("DEF-%d-002", year), *second.ReferenceID)
}

func TestRemovePhoto_CleansUpBackup(t *testing.T) {
	svc := NewRecordService(openTestDB(t))
	queue := &recordingQueue{}
	svc.SetBackupQueue(queue)

	inline := testPhoto("1", models.CategoryOverview)
	inline.URI = testDataURI(t)
	require.NoError(t, svc.SavePhoto("p1", inline))
	require.NoError(t, svc.RemovePhoto("p1", "1"))

	require.Len(t, queue.removed, 1)
	assert.Equal(t, "p1/1", queue.removed[0])
}

func TestGetPhoto_NotFound(t *testing.T) {
	svc := NewRecordService(openTestDB(t))
	_, err := svc.GetPhoto("p1", "missing")
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestReplaceAnnotations_SwapsWholesale(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	photo := testPhoto("1", models.CategoryOverview)
	photo.Annotations = []models.Annotation{{ID: "a1", Type: "arrow", Color: "#FF0000"}}
	require.NoError(t, svc.SavePhoto("p1", photo))

	replacement := []models.Annotation{{ID: "a2", Type: "rectangle", Color: "#00FF00"}}
	updated, err := svc.ReplaceAnnotations("p1", "1", replacement)
	require.NoError(t, err)
	require.Len(t, updated.Annotations, 1)
	assert.Equal(t, "a2", updated.Annotations[0].ID)

	stored, err := svc.GetPhoto("p1", "1")
	require.NoError(t, err)
	require.Len(t, stored.Annotations, 1)
	assert.Equal(t, "a2", stored.Annotations[0].ID)
}

func validDraft(id string) *models.Inspection {
	now := time.Now().UTC().Format(time.RFC3339)
	return &models.Inspection{
		ID:        id,
		ProjectID: "p1",
		Status:    models.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSaveDraft_RoundTrip(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	draft := validDraft("insp-1")
	draft.Photos = []models.Photo{*testPhoto("1", models.CategoryDefect)}
	require.NoError(t, svc.SaveDraft(draft))

	drafts := svc.GetDrafts()
	require.Len(t, drafts, 1)
	assert.Equal(t, "insp-1", drafts[0].ID)
	require.Len(t, drafts[0].Photos, 1)
	assert.Equal(t, "1", drafts[0].Photos[0].ID)
}

func TestSaveDraft_UpsertsByID(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	require.NoError(t, svc.SaveDraft(validDraft("insp-1")))
	updated := validDraft("insp-1")
	updated.Status = models.StatusCompleted
	require.NoError(t, svc.SaveDraft(updated))

	drafts := svc.GetDrafts()
	require.Len(t, drafts, 1)
	assert.Equal(t, models.StatusCompleted, drafts[0].Status)
}

func TestSaveDraft_InvalidLeavesStoreUnchanged(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	draft := validDraft("insp-1")
	draft.Photos = []models.Photo{*testPhoto("1", models.CategoryDefect)}
	draft.Photos[0].GPSLocation.Latitude = 91

	err := svc.SaveDraft(draft)
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, err.Error(), "invalid inspection data: ")
	assert.Contains(t, err.Error(), "photos[0].gpsLocation.latitude")
	assert.Empty(t, svc.GetDrafts())
}

func TestCompleteInspection(t *testing.T) {
	svc := NewRecordService(openTestDB(t))
	require.NoError(t, svc.SaveDraft(validDraft("insp-1")))

	svc.SaveAutoSave(&models.AutoSaveSnapshot{ProjectID: "p1", InspectionID: "insp-1"})
	require.NotNil(t, svc.GetAutoSave("p1"))

	completed, err := svc.CompleteInspection("insp-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	assert.Nil(t, svc.GetAutoSave("p1"), "completion clears the project's auto-save slot")
}

func TestCompleteInspection_NotFound(t *testing.T) {
	svc := NewRecordService(openTestDB(t))
	_, err := svc.CompleteInspection("missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestAutoSaveLifecycle(t *testing.T) {
	svc := NewRecordService(openTestDB(t))
	assert.Nil(t, svc.GetAutoSave("p1"))

	svc.SaveAutoSave(&models.AutoSaveSnapshot{
		ProjectID:       "p1",
		InspectionID:    "insp-1",
		CurrentStep:     2,
		CurrentCategory: models.CategoryRisk,
	})

	snap := svc.GetAutoSave("p1")
	require.NotNil(t, snap)
	assert.Equal(t, "insp-1", snap.InspectionID)
	assert.Equal(t, 2, snap.CurrentStep)

	svc.ClearAutoSave("p1")
	assert.Nil(t, svc.GetAutoSave("p1"))
	// clearing an absent slot is a no-op
	svc.ClearAutoSave("p1")
}

func TestGetLatestAutoSave(t *testing.T) {
	svc := NewRecordService(openTestDB(t))
	assert.Nil(t, svc.GetLatestAutoSave())

	svc.SaveAutoSave(&models.AutoSaveSnapshot{ProjectID: "p1", InspectionID: "insp-1"})
	time.Sleep(5 * time.Millisecond)
	svc.SaveAutoSave(&models.AutoSaveSnapshot{ProjectID: "p2", InspectionID: "insp-2"})

	latest := svc.GetLatestAutoSave()
	require.NotNil(t, latest)
	assert.Equal(t, "p2", latest.ProjectID)
}

func TestProjectCache(t *testing.T) {
	svc := NewRecordService(openTestDB(t))
	assert.Empty(t, svc.GetCachedProjects())

	svc.CacheProjects([]models.Project{
		{ID: "p1", Name: "Site 10"},
		{ID: "p2", Name: "Site 2"},
	})
	assert.Len(t, svc.GetCachedProjects(), 2)

	// a refresh replaces the cache wholesale
	svc.CacheProjects([]models.Project{{ID: "p3", Name: "Site 3"}})
	projects := svc.GetCachedProjects()
	require.Len(t, projects, 1)
	assert.Equal(t, "p3", projects[0].ID)
}

func TestPreferences(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	// before first run the installation defaults apply
	prefs := svc.GetPreferences()
	assert.Equal(t, 0.8, prefs.Storage.CompressionQuality)
	assert.True(t, prefs.Storage.AutoBackup)
	assert.Equal(t, "/photos", prefs.Storage.LocalPath)

	require.NoError(t, svc.EnsurePreferences())
	require.NoError(t, svc.EnsurePreferences()) // idempotent

	prefs.Storage.CompressionQuality = 0.5
	prefs.Storage.AutoBackup = false
	updated, err := svc.UpdatePreferences(prefs)
	require.NoError(t, err)
	assert.True(t, updated.Storage.AutoBackup, "automatic backup cannot be switched off")
	assert.Equal(t, 0.5, updated.Storage.CompressionQuality)

	reread := svc.GetPreferences()
	assert.Equal(t, 0.5, reread.Storage.CompressionQuality)
	assert.True(t, reread.Storage.AutoBackup)
}

var errStoreBroken = errors.New("disk I/O error")

type failingPhotoRepo struct{}

func (failingPhotoRepo) Save(*models.Photo) error                      { return errStoreBroken }
func (failingPhotoRepo) Get(string, string) (*models.Photo, error)     { return nil, errStoreBroken }
func (failingPhotoRepo) ListByProject(string) ([]models.Photo, error)  { return nil, errStoreBroken }
func (failingPhotoRepo) Delete(string, string) error                   { return errStoreBroken }

type failingDraftRepo struct{}

func (failingDraftRepo) Upsert(*models.Inspection) error               { return errStoreBroken }
func (failingDraftRepo) GetByID(string) (*models.Inspection, error)    { return nil, errStoreBroken }
func (failingDraftRepo) ListAll() ([]models.Inspection, error)         { return nil, errStoreBroken }
func (failingDraftRepo) Delete(string) error                           { return errStoreBroken }

type failingAutoSaveRepo struct{}

func (failingAutoSaveRepo) Put(*models.AutoSaveSnapshot) error             { return errStoreBroken }
func (failingAutoSaveRepo) Get(string) (*models.AutoSaveSnapshot, error)   { return nil, errStoreBroken }
func (failingAutoSaveRepo) Latest() (*models.AutoSaveSnapshot, error)      { return nil, errStoreBroken }
func (failingAutoSaveRepo) Delete(string) error                            { return errStoreBroken }

type failingProjectRepo struct{}

func (failingProjectRepo) ReplaceAll([]models.Project) error   { return errStoreBroken }
func (failingProjectRepo) ListAll() ([]models.Project, error)  { return nil, errStoreBroken }

type failingPrefsRepo struct{}

func (failingPrefsRepo) Get() (*models.UserPreferences, error) { return nil, errStoreBroken }
func (failingPrefsRepo) Put(*models.UserPreferences) error     { return errStoreBroken }

func TestFailSoftPathsSwallowStoreErrors(t *testing.T) {
	svc := &RecordService{
		photos:   failingPhotoRepo{},
		drafts:   failingDraftRepo{},
		autosave: failingAutoSaveRepo{},
		projects: failingProjectRepo{},
		prefs:    failingPrefsRepo{},
	}

	assert.Equal(t, []models.Photo{}, svc.GetPhotos("p1"))
	assert.Equal(t, []models.Inspection{}, svc.GetDrafts())
	assert.Nil(t, svc.GetAutoSave("p1"))
	assert.Nil(t, svc.GetLatestAutoSave())
	assert.Equal(t, []models.Project{}, svc.GetCachedProjects())

	// fire-and-forget writes swallow the failure too
	svc.SaveAutoSave(&models.AutoSaveSnapshot{ProjectID: "p1"})
	svc.ClearAutoSave("p1")
	svc.CacheProjects([]models.Project{{ID: "p1", Name: "Site 1"}})

	// preferences degrade to the installation defaults
	prefs := svc.GetPreferences()
	assert.Equal(t, 0.8, prefs.Storage.CompressionQuality)
	assert.True(t, prefs.Storage.AutoBackup)
}

func TestReadPathsReturnEmptyListsNotNil(t *testing.T) {
	svc := NewRecordService(openTestDB(t))

	assert.NotNil(t, svc.GetPhotos("p1"))
	assert.NotNil(t, svc.GetDrafts())
	assert.NotNil(t, svc.GetCachedProjects())
}
