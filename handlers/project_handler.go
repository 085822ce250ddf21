package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/facette/natsort"
	"github.com/go-chi/chi/v5"

	"github.com/camden-git/inspectsysbackend/models"
	"github.com/camden-git/inspectsysbackend/repository"
	"github.com/camden-git/inspectsysbackend/services"
)

// ProjectHandler exposes the cached project list and per-project reports
type ProjectHandler struct {
	Store   *services.RecordService
	Reports *repository.ReportRepository
}

// CacheProjects replaces the cached project list. The cache write is
// fail-soft, so this always acknowledges
func (ph *ProjectHandler) CacheProjects(w http.ResponseWriter, r *http.Request) {
	var projects []models.Project
	if err := json.NewDecoder(r.Body).Decode(&projects); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	ph.Store.CacheProjects(projects)
	w.WriteHeader(http.StatusAccepted)
}

// ListProjects returns cached project summaries in natural name order, so
// "Phase 2" sorts before "Phase 10"
func (ph *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects := ph.Store.GetCachedProjects()
	sort.SliceStable(projects, func(i, j int) bool {
		return natsort.Compare(projects[i].Name, projects[j].Name)
	})
	writeJSON(w, http.StatusOK, projects)
}

// ProjectSummary returns per-category photo counts and issued reference
// counter values for one project
func (ph *ProjectHandler) ProjectSummary(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	summary, err := ph.Reports.ProjectSummary(projectID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
