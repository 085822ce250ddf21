package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/camden-git/inspectsysbackend/models"
	"github.com/camden-git/inspectsysbackend/services"
)

// PreferencesHandler exposes the singleton user preferences record
type PreferencesHandler struct {
	Store *services.RecordService
}

// GetPreferences returns the stored preferences, or the installation
// defaults before first save
func (ph *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ph.Store.GetPreferences())
}

// UpdatePreferences overwrites the preferences record. Automatic backup
// cannot be turned off
func (ph *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	updated, err := ph.Store.UpdatePreferences(prefs)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
