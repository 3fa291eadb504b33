package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// AccountType represents the kind of account a user holds
type AccountType string

const (
	AccountStudent    AccountType = "Student"
	AccountInstructor AccountType = "Instructor"
	AccountAdmin      AccountType = "Admin"
)

// User represents a user in the system
type User struct {
	ID           int64       `json:"id" db:"id"`
	FirstName    string      `json:"first_name" db:"first_name"`
	LastName     string      `json:"last_name" db:"last_name"`
	Email        string      `json:"email" db:"email"`
	PasswordHash string      `json:"-" db:"password_hash"`
	AccountType  AccountType `json:"account_type" db:"account_type"`
	Image        string      `json:"image,omitempty" db:"image"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// UserDetails is the slice of a user that travels with a purchase
type UserDetails struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Details returns the purchase-facing view of the user
func (u *User) Details() UserDetails {
	return UserDetails{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserCreateRequest represents the data needed to create a new user
type UserCreateRequest struct {
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	AccountType AccountType `json:"account_type"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
)

// Validate validates user creation data
func (req *UserCreateRequest) Validate() error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}

	if err := validateName(req.FirstName, req.LastName); err != nil {
		return err
	}

	return validateAccountType(req.AccountType)
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	if len(email) > 255 {
		return errors.New("email must be less than 255 characters")
	}

	if !emailRegex.MatchString(email) {
		return errors.New("email format is invalid")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}

	if len(password) > 128 {
		return errors.New("password must be less than 128 characters")
	}

	return nil
}

func validateName(firstName, lastName string) error {
	if firstName == "" {
		return errors.New("first name is required")
	}

	if lastName == "" {
		return errors.New("last name is required")
	}

	if len(firstName) > 100 || len(lastName) > 100 {
		return errors.New("names must be less than 100 characters")
	}

	if !nameRegex.MatchString(firstName) {
		return errors.New("first name contains invalid characters")
	}

	if !nameRegex.MatchString(lastName) {
		return errors.New("last name contains invalid characters")
	}

	return nil
}

func validateAccountType(accountType AccountType) error {
	switch accountType {
	case AccountStudent, AccountInstructor, AccountAdmin:
		return nil
	default:
		return errors.New("account type is invalid")
	}
}
