package models

import "time"

// Enrollment associates a student with a purchased course
type Enrollment struct {
	UserID     int64     `json:"user_id" db:"user_id"`
	CourseID   int64     `json:"course_id" db:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at" db:"enrolled_at"`
}
