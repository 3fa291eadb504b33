package handlers

import (
	"net/http"

	"elearning-marketplace/internal/middleware"
	"elearning-marketplace/internal/services"
)

// ProfileHandler serves the signed-in user's own data
type ProfileHandler struct {
	courseService services.CourseServiceInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(courseService services.CourseServiceInterface) *ProfileHandler {
	return &ProfileHandler{courseService: courseService}
}

// GetEnrolledCourses handles GET /profile/getEnrolledCourses
func (h *ProfileHandler) GetEnrolledCourses(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	courses, err := h.courseService.GetEnrolledCourses(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Enrolled courses fetched successfully", courses)
}
