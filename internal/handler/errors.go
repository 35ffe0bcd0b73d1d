package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsboard/internal/models"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps store/service errors onto the API's status codes.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	var validationErr *models.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, ErrorResponse{Error: validationErr.Error(), Field: validationErr.Field}, http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrInvalidInput):
		WriteError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, notFoundMessage, http.StatusNotFound)
	default:
		h.Log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		WriteError(w, "Internal server error", http.StatusInternalServerError)
	}
}
