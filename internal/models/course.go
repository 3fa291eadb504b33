package models

import (
	"errors"
	"time"
)

// CourseStatus represents the publication state of a course
type CourseStatus string

const (
	CourseDraft     CourseStatus = "Draft"
	CoursePublished CourseStatus = "Published"
)

// Course represents a course offered on the marketplace
type Course struct {
	ID                int64        `json:"id" db:"id"`
	CourseName        string       `json:"course_name" db:"course_name"`
	CourseDescription string       `json:"course_description" db:"course_description"`
	InstructorID      int64        `json:"instructor_id" db:"instructor_id"`
	Price             int          `json:"price" db:"price"` // in cents
	Thumbnail         string       `json:"thumbnail,omitempty" db:"thumbnail"`
	Status            CourseStatus `json:"status" db:"status"`
	RatingAndReviews  []int64      `json:"rating_and_reviews" db:"rating_and_reviews"`
	StudentsEnrolled  int          `json:"students_enrolled" db:"-"`
	AverageRating     float64      `json:"average_rating" db:"-"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
}

// IsPublished checks if the course can be bought
func (c *Course) IsPublished() bool {
	return c.Status == CoursePublished
}

// ToCartCourse converts the course to its cart representation
func (c *Course) ToCartCourse() CartCourse {
	return CartCourse{
		ID:         c.ID,
		CourseName: c.CourseName,
		Price:      c.Price,
		Thumbnail:  c.Thumbnail,
	}
}

// Validate validates the course data
func (c *Course) Validate() error {
	if c.CourseName == "" {
		return errors.New("course name is required")
	}

	if c.Price < 0 {
		return errors.New("price cannot be negative")
	}

	switch c.Status {
	case CourseDraft, CoursePublished:
	default:
		return errors.New("course status is invalid")
	}

	return nil
}
