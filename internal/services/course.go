package services

import (
	"context"

	"elearning-marketplace/internal/models"
)

// CourseRepository interface for course reads
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ListPublished(ctx context.Context) ([]*models.Course, error)
	ListEnrolledByUser(ctx context.Context, userID int64) ([]*models.Course, error)
}

// ReviewRepository interface for review reads
type ReviewRepository interface {
	ListByCourse(ctx context.Context, courseID int64) ([]*models.RatingAndReview, error)
	ListAll(ctx context.Context, limit int) ([]*models.RatingAndReview, error)
}

const defaultReviewLimit = 100

// CourseService serves the catalogue and its reviews
type CourseService struct {
	courseRepo CourseRepository
	reviewRepo ReviewRepository
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo CourseRepository, reviewRepo ReviewRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo, reviewRepo: reviewRepo}
}

// GetAllCourses returns every published course
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.ListPublished(ctx)
}

// GetCourseDetails returns a published course with its average rating
// filled in. Drafts are reported as not found.
func (s *CourseService) GetCourseDetails(ctx context.Context, courseID int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished() {
		return nil, models.ErrCourseNotFound
	}

	reviews, err := s.reviewRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	course.AverageRating = models.AverageRating(reviews)
	return course, nil
}

// GetCourseReviews returns a course's reviews in the order the course lists them
func (s *CourseService) GetCourseReviews(ctx context.Context, courseID int64) ([]*models.RatingAndReview, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByCourse(ctx, courseID)
}

// GetAllReviews returns reviews across the catalogue, best first
func (s *CourseService) GetAllReviews(ctx context.Context, limit int) ([]*models.RatingAndReview, error) {
	if limit <= 0 {
		limit = defaultReviewLimit
	}
	return s.reviewRepo.ListAll(ctx, limit)
}

// GetEnrolledCourses returns the courses the user is enrolled in
func (s *CourseService) GetEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error) {
	courses, err := s.courseRepo.ListEnrolledByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	return courses, nil
}
