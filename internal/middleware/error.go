package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"

	"elearning-marketplace/internal/models"
)

// ErrorHandlingMiddleware turns panics into a JSON 500
func ErrorHandlingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v\n%s", err, debug.Stack())
				writeJSONError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Route not found")
	})
}

// MethodNotAllowedHandler handles 405 errors
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed for this endpoint")
	})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.APIResponse{Success: false, Message: message})
}
