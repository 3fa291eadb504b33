package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"elearning-marketplace/internal/middleware"
	"elearning-marketplace/internal/models"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, models.APIResponse{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.APIResponse{Success: false, Message: message})
}

// statusForError maps domain errors onto HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNoCourses), errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrCourseNotFound), errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyEnrolled), errors.Is(err, models.ErrDuplicateEntry),
		errors.Is(err, models.ErrCourseInCart):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError replies with the mapped status. Internal errors are
// logged and their text is not sent to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", middleware.GetRequestID(r.Context()), r.Method, r.URL.Path, err)
		writeError(w, status, "Something went wrong. Please try again.")
		return
	}
	writeError(w, status, err.Error())
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body", models.ErrInvalidInput)
	}
	return nil
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", models.ErrInvalidInput, name)
	}
	return id, nil
}

// handleRedirect handles redirects appropriately for HTMX vs regular requests
func handleRedirect(w http.ResponseWriter, r *http.Request, url string, statusCode int) {
	if middleware.IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
	} else {
		http.Redirect(w, r, url, statusCode)
	}
}
