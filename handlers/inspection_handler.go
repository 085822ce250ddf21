package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/camden-git/inspectsysbackend/models"
	"github.com/camden-git/inspectsysbackend/services"
)

// InspectionHandler exposes the draft lifecycle and auto-save slots
type InspectionHandler struct {
	Store *services.RecordService
}

// SaveDraft validates and upserts an inspection draft. A missing ID is
// assigned server-side so clients can create drafts in one round trip
func (ih *InspectionHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var insp models.Inspection
	if err := json.NewDecoder(r.Body).Decode(&insp); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	if insp.ID == "" {
		insp.ID = uuid.NewString()
	}

	if err := ih.Store.SaveDraft(&insp); err != nil {
		WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

// ListDrafts returns the drafts list; never fails
func (ih *InspectionHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ih.Store.GetDrafts())
}

// CompleteInspection finishes a draft and clears its project's auto-save slot
func (ih *InspectionHandler) CompleteInspection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "inspection_id")

	insp, err := ih.Store.CompleteInspection(id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

// PutAutoSave overwrites the project's auto-save slot. Always succeeds from
// the client's point of view; a storage failure is logged server-side only
func (ih *InspectionHandler) PutAutoSave(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	var snap models.AutoSaveSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	snap.ProjectID = projectID

	ih.Store.SaveAutoSave(&snap)
	w.WriteHeader(http.StatusAccepted)
}

// GetAutoSave returns the project's snapshot, or null when none exists
func (ih *InspectionHandler) GetAutoSave(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	writeJSON(w, http.StatusOK, ih.Store.GetAutoSave(projectID))
}

// LatestAutoSave returns the most recent snapshot across projects, for the
// resume prompt
func (ih *InspectionHandler) LatestAutoSave(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ih.Store.GetLatestAutoSave())
}

// DeleteAutoSave clears the project's snapshot slot
func (ih *InspectionHandler) DeleteAutoSave(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	ih.Store.ClearAutoSave(projectID)
	w.WriteHeader(http.StatusNoContent)
}
