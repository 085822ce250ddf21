package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/camden-git/inspectsysbackend/models"
)

// FieldError describes a single violated constraint on a candidate record
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Join collapses field errors into the single human-readable message that is
// surfaced to the user alongside a validation failure
func Join(errs []FieldError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, ", ")
}

var validStatuses = map[string]bool{
	models.StatusDraft:     true,
	models.StatusCompleted: true,
}

var validCategories = map[string]bool{
	models.CategoryDefect:   true,
	models.CategoryRisk:     true,
	models.CategoryOverview: true,
}

// ValidateInspection checks an inspection record against the draft schema.
// Validation is all-or-nothing: every violated field is reported and the
// record must not be persisted while any violation is present
func ValidateInspection(insp *models.Inspection) []FieldError {
	var errs []FieldError

	if insp.ID == "" {
		errs = append(errs, FieldError{"id", "must not be empty"})
	}
	if insp.ProjectID == "" {
		errs = append(errs, FieldError{"projectId", "must not be empty"})
	}
	if !validStatuses[insp.Status] {
		errs = append(errs, FieldError{"status", "must be 'draft' or 'completed'"})
	}
	if !isDateTime(insp.CreatedAt) {
		errs = append(errs, FieldError{"createdAt", "must be an ISO-8601 date-time"})
	}
	if !isDateTime(insp.UpdatedAt) {
		errs = append(errs, FieldError{"updatedAt", "must be an ISO-8601 date-time"})
	}

	for i := range insp.Photos {
		errs = append(errs, validatePhoto(fmt.Sprintf("photos[%d]", i), &insp.Photos[i])...)
	}

	return errs
}

// ValidatePhoto checks a single photo record against the photo schema
func ValidatePhoto(photo *models.Photo) []FieldError {
	return validatePhoto("", photo)
}

func validatePhoto(prefix string, photo *models.Photo) []FieldError {
	var errs []FieldError
	path := func(field string) string {
		if prefix == "" {
			return field
		}
		return prefix + "." + field
	}

	if photo.ID == "" {
		errs = append(errs, FieldError{path("id"), "must not be empty"})
	}
	if photo.URI == "" {
		errs = append(errs, FieldError{path("uri"), "must not be empty"})
	}
	if !validCategories[photo.Category] {
		errs = append(errs, FieldError{path("category"), "must be 'Defect', 'Risk' or 'Overview'"})
	}
	if lat := photo.GPSLocation.Latitude; lat < -90 || lat > 90 {
		errs = append(errs, FieldError{path("gpsLocation.latitude"), "must be between -90 and 90"})
	}
	if lon := photo.GPSLocation.Longitude; lon < -180 || lon > 180 {
		errs = append(errs, FieldError{path("gpsLocation.longitude"), "must be between -180 and 180"})
	}
	if !isDateTime(photo.Timestamp) {
		errs = append(errs, FieldError{path("timestamp"), "must be an ISO-8601 date-time"})
	}

	return errs
}

func isDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
