package services

import (
	"context"
	"fmt"

	"elearning-marketplace/internal/models"
)

// EnrollmentRepository interface for enrollment writes
type EnrollmentRepository interface {
	IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error)
	Enroll(ctx context.Context, userID int64, courseIDs []int64) error
}

// EnrollmentService records purchases as enrollments
type EnrollmentService struct {
	courseRepo     CourseRepository
	enrollmentRepo EnrollmentRepository
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(courseRepo CourseRepository, enrollmentRepo EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{courseRepo: courseRepo, enrollmentRepo: enrollmentRepo}
}

// EnrollStudent enrolls the user in every listed course or in none of them.
// Every course must exist and be published, and the user must not already
// hold any of them.
func (s *EnrollmentService) EnrollStudent(ctx context.Context, userID int64, courseIDs []int64) error {
	if len(courseIDs) == 0 {
		return models.ErrNoCourses
	}

	seen := make(map[int64]bool, len(courseIDs))
	unique := make([]int64, 0, len(courseIDs))
	for _, id := range courseIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	for _, courseID := range unique {
		course, err := s.courseRepo.GetByID(ctx, courseID)
		if err != nil {
			return fmt.Errorf("course %d: %w", courseID, err)
		}
		if !course.IsPublished() {
			return fmt.Errorf("course %d: %w", courseID, models.ErrCourseNotFound)
		}
	}

	for _, courseID := range unique {
		enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, userID, courseID)
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if enrolled {
			return fmt.Errorf("course %d: %w", courseID, models.ErrAlreadyEnrolled)
		}
	}

	return s.enrollmentRepo.Enroll(ctx, userID, unique)
}
