package repositories

import (
	"context"
	"fmt"

	"elearning-marketplace/internal/models"
)

// ReviewRepository handles rating and review data operations
type ReviewRepository struct {
	db DBTX
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review and fills in its ID and CreatedAt. It does not
// touch the course's review list; callers append separately.
func (r *ReviewRepository) Create(ctx context.Context, review *models.RatingAndReview) error {
	if err := review.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO rating_and_reviews (user_id, course_id, rating, review, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, review.UserID, review.CourseID, review.Rating, review.Review).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ListByCourse returns the reviews referenced by the course, in list order
func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.RatingAndReview, error) {
	query := `
		SELECT r.id, r.user_id, r.course_id, r.rating, r.review, r.created_at
		FROM courses c
		JOIN rating_and_reviews r ON r.id = ANY(c.rating_and_reviews)
		WHERE c.id = $1
		ORDER BY array_position(c.rating_and_reviews, r.id)`

	return r.list(ctx, query, courseID)
}

// ListAll returns reviews across all courses, best rated first
func (r *ReviewRepository) ListAll(ctx context.Context, limit int) ([]*models.RatingAndReview, error) {
	query := `
		SELECT id, user_id, course_id, rating, review, created_at
		FROM rating_and_reviews
		ORDER BY rating DESC, id
		LIMIT $1`

	return r.list(ctx, query, limit)
}

func (r *ReviewRepository) list(ctx context.Context, query string, args ...any) ([]*models.RatingAndReview, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.RatingAndReview
	for rows.Next() {
		review := &models.RatingAndReview{}
		if err := rows.Scan(&review.ID, &review.UserID, &review.CourseID, &review.Rating, &review.Review, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
