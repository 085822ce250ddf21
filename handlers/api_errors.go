package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/camden-git/inspectsysbackend/media"
	"github.com/camden-git/inspectsysbackend/services"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}
	writeJSON(w, httpStatus, resp)
}

// WriteServiceError maps the service error taxonomy onto HTTP statuses:
// validation failures are the user's to fix, compression failures reject the
// payload, persistence failures are server faults
func WriteServiceError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	var compressionErr *media.CompressionError
	var persistenceErr *services.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		WriteAPIError(w, http.StatusBadRequest, "validation_failed", validationErr.Error())
	case errors.As(err, &compressionErr):
		WriteAPIError(w, http.StatusUnprocessableEntity, "compression_failed", compressionErr.Error())
	case errors.Is(err, services.ErrDraftNotFound), errors.Is(err, services.ErrPhotoNotFound):
		WriteAPIError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &persistenceErr):
		log.Printf("ERROR persistence failure: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "persistence_failed", "storage is unavailable")
	default:
		log.Printf("ERROR unhandled service error: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
