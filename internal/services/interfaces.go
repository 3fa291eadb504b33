package services

import (
	"context"

	"elearning-marketplace/internal/models"
)

// AuthServiceInterface defines the interface for authentication services
type AuthServiceInterface interface {
	Signup(ctx context.Context, req *models.UserCreateRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginData, error)
}

// CourseServiceInterface defines the interface for course services
type CourseServiceInterface interface {
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseDetails(ctx context.Context, courseID int64) (*models.Course, error)
	GetCourseReviews(ctx context.Context, courseID int64) ([]*models.RatingAndReview, error)
	GetAllReviews(ctx context.Context, limit int) ([]*models.RatingAndReview, error)
	GetEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error)
}

// EnrollmentServiceInterface defines the interface for enrollment services
type EnrollmentServiceInterface interface {
	EnrollStudent(ctx context.Context, userID int64, courseIDs []int64) error
}

// PurchaseServiceInterface defines the interface for the storefront checkout
type PurchaseServiceInterface interface {
	BuyCourse(ctx context.Context, req PurchaseRequest, navigate Navigator, dispatch Dispatcher) PurchaseResult
}

var (
	_ AuthServiceInterface       = (*AuthService)(nil)
	_ CourseServiceInterface     = (*CourseService)(nil)
	_ EnrollmentServiceInterface = (*EnrollmentService)(nil)
	_ PurchaseServiceInterface   = (*PurchaseService)(nil)
	_ Connector                  = (*APIConnector)(nil)
)
