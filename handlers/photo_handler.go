package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/inspectsysbackend/models"
	"github.com/camden-git/inspectsysbackend/services"
)

// PhotoHandler exposes the photo save/list/remove and annotation operations
type PhotoHandler struct {
	Store *services.RecordService
}

// SavePhoto persists one photo for the project. Defect/Risk photos get a
// reference ID issued on first save
func (ph *PhotoHandler) SavePhoto(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	var photo models.Photo
	if err := json.NewDecoder(r.Body).Decode(&photo); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	if photo.ID == "" || photo.URI == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_fields", "Missing required fields: id and uri")
		return
	}

	if err := ph.Store.SavePhoto(projectID, &photo); err != nil {
		WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

// ListPhotos returns the project's photos in capture order. This path never
// fails; a broken store yields an empty list
func (ph *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	writeJSON(w, http.StatusOK, ph.Store.GetPhotos(projectID))
}

// GetPhoto returns a single photo record
func (ph *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	photoID := chi.URLParam(r, "photo_id")

	photo, err := ph.Store.GetPhoto(projectID, photoID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

// RemovePhoto deletes the targeted photo; issued reference counters are
// deliberately left untouched
func (ph *PhotoHandler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	photoID := chi.URLParam(r, "photo_id")

	if err := ph.Store.RemovePhoto(projectID, photoID); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReplaceAnnotations swaps the photo's annotation list wholesale with the
// list produced by the annotation tool
func (ph *PhotoHandler) ReplaceAnnotations(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	photoID := chi.URLParam(r, "photo_id")

	var annotations []models.Annotation
	if err := json.NewDecoder(r.Body).Decode(&annotations); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	photo, err := ph.Store.ReplaceAnnotations(projectID, photoID, annotations)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}
