package models

import "errors"

// Common errors used throughout the application
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled")
	ErrNoCourses          = errors.New("please provide course ids")
	ErrCourseInCart       = errors.New("course already in cart")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEntry     = errors.New("duplicate entry")
)
