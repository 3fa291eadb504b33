package handlers

import (
	"net/http"

	"elearning-marketplace/internal/middleware"
	"elearning-marketplace/internal/models"
	"elearning-marketplace/internal/services"
)

// PaymentHandler turns captured payments into enrollments. No payment
// gateway is contacted.
type PaymentHandler struct {
	enrollmentService services.EnrollmentServiceInterface
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(enrollmentService services.EnrollmentServiceInterface) *PaymentHandler {
	return &PaymentHandler{enrollmentService: enrollmentService}
}

// CapturePayment handles POST /payment/capturePayment with body {"courses": [...]}
func (h *PaymentHandler) CapturePayment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	var body models.PurchaseRequestBody
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.enrollmentService.EnrollStudent(r.Context(), claims.UserID, body.Courses); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Student enrolled successfully", nil)
}
