package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"elearning-marketplace/internal/models"
)

// EnrollmentRepository records which students own which courses
type EnrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// IsEnrolled checks whether the user already owns the course
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_enrollments WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return exists, nil
}

// Enroll records all enrollments in one transaction
func (r *EnrollmentRepository) Enroll(ctx context.Context, userID int64, courseIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, courseID := range courseIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO course_enrollments (user_id, course_id, enrolled_at) VALUES ($1, $2, NOW())`,
			userID, courseID)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("course %d: %w", courseID, models.ErrAlreadyEnrolled)
			}
			return fmt.Errorf("failed to enroll in course %d: %w", courseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit enrollment: %w", err)
	}
	return nil
}
