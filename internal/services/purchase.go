package services

import (
	"context"
	"errors"
	"log"
	"net/http"

	"elearning-marketplace/internal/models"
)

const (
	CoursePaymentAPI    = "/payment/capturePayment"
	EnrolledCoursesPath = "/dashboard/enrolled-courses"

	purchaseLoadingMessage = "Loading..."
	purchaseSuccessMessage = "Enrollment Successful, you are added to the course"
	purchaseFailureMessage = "Could not enroll in course"
)

// Action is a state update sent through a Dispatcher
type Action string

// ResetCart empties the buyer's cart
const ResetCart Action = "cart/resetCart"

// Navigator moves the user to another page
type Navigator func(path string)

// Dispatcher applies a state action
type Dispatcher func(action Action)

// PurchaseRequest carries everything needed to buy courses
type PurchaseRequest struct {
	Token       string
	Courses     []int64
	UserDetails models.UserDetails
}

// PurchaseResult is the outcome of BuyCourse. Err holds the underlying
// cause when Success is false.
type PurchaseResult struct {
	Success bool
	Message string
	Err     error
}

// PurchaseService enrolls the signed-in user in the courses they bought
type PurchaseService struct {
	connector Connector
	notifier  Notifier
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(connector Connector, notifier Notifier) *PurchaseService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &PurchaseService{connector: connector, notifier: notifier}
}

// BuyCourse asks the API to enroll the user. On success it navigates to
// the enrolled-courses page and resets the cart exactly once. Failures are
// reported through the notifier and the result, never returned as errors.
func (s *PurchaseService) BuyCourse(ctx context.Context, req PurchaseRequest, navigate Navigator, dispatch Dispatcher) PurchaseResult {
	toastID := s.notifier.Loading(purchaseLoadingMessage)
	defer s.notifier.Dismiss(toastID)

	if err := s.enroll(ctx, req); err != nil {
		log.Printf("ENROLLMENT API ERROR..... user=%d courses=%v: %v", req.UserDetails.ID, req.Courses, err)
		s.notifier.Error(purchaseFailureMessage)
		return PurchaseResult{Message: purchaseFailureMessage, Err: err}
	}

	s.notifier.Success(purchaseSuccessMessage)
	if navigate != nil {
		navigate(EnrolledCoursesPath)
	}
	if dispatch != nil {
		dispatch(ResetCart)
	}
	return PurchaseResult{Success: true, Message: purchaseSuccessMessage}
}

func (s *PurchaseService) enroll(ctx context.Context, req PurchaseRequest) error {
	resp, err := s.connector.Do(ctx, APIRequest{
		Method: http.MethodPost,
		URL:    CoursePaymentAPI,
		Body:   models.PurchaseRequestBody{Courses: req.Courses},
		Headers: map[string]string{
			"Authorization": "Bearer " + req.Token,
		},
	})
	if err != nil {
		return err
	}

	envelope, err := resp.Envelope()
	if err != nil {
		return err
	}
	if !envelope.Success {
		return errors.New(envelope.Message)
	}
	return nil
}
