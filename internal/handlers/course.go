package handlers

import (
	"net/http"
	"strconv"

	"elearning-marketplace/internal/services"
)

// CourseHandler serves the public catalogue
type CourseHandler struct {
	courseService services.CourseServiceInterface
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService services.CourseServiceInterface) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// GetAllCourses handles GET /course/getAllCourses
func (h *CourseHandler) GetAllCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.GetAllCourses(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Data for all courses fetched successfully", courses)
}

// GetCourseDetails handles GET /course/{courseID}
func (h *CourseHandler) GetCourseDetails(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "courseID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	course, err := h.courseService.GetCourseDetails(r.Context(), courseID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Course details fetched successfully", course)
}

// GetCourseReviews handles GET /course/{courseID}/reviews
func (h *CourseHandler) GetCourseReviews(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "courseID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	reviews, err := h.courseService.GetCourseReviews(r.Context(), courseID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Course reviews fetched successfully", reviews)
}

// GetAllReviews handles GET /course/getReviews?limit=N
func (h *CourseHandler) GetAllReviews(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = parsed
	}

	reviews, err := h.courseService.GetAllReviews(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "All reviews fetched successfully", reviews)
}
