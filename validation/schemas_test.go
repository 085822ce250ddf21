package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/inspectsysbackend/models"
)

func validInspection() models.Inspection {
	return models.Inspection{
		ID:        "insp-1",
		ProjectID: "p1",
		Status:    models.StatusDraft,
		CreatedAt: "2026-09-01T10:00:00Z",
		UpdatedAt: "2026-09-01T10:05:00Z",
		Photos: []models.Photo{
			{
				ID:        "1725184800000",
				ProjectID: "p1",
				URI:       "file:///photos/1725184800000.jpg",
				Category:  models.CategoryDefect,
				GPSLocation: models.GPSLocation{
					Latitude:  51.5072,
					Longitude: -0.1276,
				},
				Timestamp: "2026-09-01T10:01:00Z",
			},
		},
	}
}

func TestValidateInspection_Valid(t *testing.T) {
	insp := validInspection()
	assert.Empty(t, ValidateInspection(&insp))
}

func TestValidateInspection_CollectsAllViolations(t *testing.T) {
	insp := validInspection()
	insp.ID = ""
	insp.Status = "archived"
	insp.CreatedAt = "yesterday"

	errs := ValidateInspection(&insp)
	require.Len(t, errs, 3)

	paths := make([]string, len(errs))
	for i, e := range errs {
		paths[i] = e.Path
	}
	assert.ElementsMatch(t, []string{"id", "status", "createdAt"}, paths)
}

func TestValidateInspection_PhotoFieldPaths(t *testing.T) {
	insp := validInspection()
	insp.Photos[0].GPSLocation.Latitude = 91
	insp.Photos[0].Category = "Hazard"

	errs := ValidateInspection(&insp)
	require.Len(t, errs, 2)
	assert.Equal(t, "photos[0].category", errs[0].Path)
	assert.Equal(t, "photos[0].gpsLocation.latitude", errs[1].Path)
}

func TestValidatePhoto(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Photo)
		wantErr string
	}{
		{"empty id", func(p *models.Photo) { p.ID = "" }, "id"},
		{"empty uri", func(p *models.Photo) { p.URI = "" }, "uri"},
		{"bad category", func(p *models.Photo) { p.Category = "Other" }, "category"},
		{"latitude too low", func(p *models.Photo) { p.GPSLocation.Latitude = -90.5 }, "gpsLocation.latitude"},
		{"longitude too high", func(p *models.Photo) { p.GPSLocation.Longitude = 180.5 }, "gpsLocation.longitude"},
		{"bad timestamp", func(p *models.Photo) { p.Timestamp = "01/09/2026" }, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo := validInspection().Photos[0]
			tt.mutate(&photo)
			errs := ValidatePhoto(&photo)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantErr, errs[0].Path)
		})
	}
}

func TestValidatePhoto_BoundaryCoordinatesAreValid(t *testing.T) {
	photo := validInspection().Photos[0]
	photo.GPSLocation.Latitude = -90
	photo.GPSLocation.Longitude = 180
	assert.Empty(t, ValidatePhoto(&photo))
}

func TestJoin(t *testing.T) {
	errs := []FieldError{
		{"id", "must not be empty"},
		{"status", "must be 'draft' or 'completed'"},
	}
	assert.Equal(t, "id: must not be empty, status: must be 'draft' or 'completed'", Join(errs))
}
