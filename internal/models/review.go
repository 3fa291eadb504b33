package models

import (
	"errors"
	"strings"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// RatingAndReview is a student's rating of a course. Duplicate reviews are
// allowed; nothing enforces one review per user and course.
type RatingAndReview struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CourseID  int64     `json:"course_id" db:"course_id"`
	Rating    int       `json:"rating" db:"rating"`
	Review    string    `json:"review" db:"review"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Validate validates the review data
func (r *RatingAndReview) Validate() error {
	if r.UserID <= 0 {
		return errors.New("user is required")
	}

	if r.CourseID <= 0 {
		return errors.New("course is required")
	}

	if r.Rating < MinRating || r.Rating > MaxRating {
		return errors.New("rating must be between 1 and 5")
	}

	if strings.TrimSpace(r.Review) == "" {
		return errors.New("review text is required")
	}

	return nil
}

// AverageRating returns the mean rating, or 0 for no reviews
func AverageRating(reviews []*RatingAndReview) float64 {
	if len(reviews) == 0 {
		return 0
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	return float64(total) / float64(len(reviews))
}
