package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"elearning-marketplace/internal/auth"
	"elearning-marketplace/internal/models"
	"elearning-marketplace/internal/utils"
)

// UserRepository interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, req *models.UserCreateRequest, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService handles signup and login
type AuthService struct {
	userRepo UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Signup validates the request and creates the account
func (s *AuthService) Signup(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.AccountType == "" {
		req.AccountType = models.AccountStudent
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req, hashedPassword)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginData, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", models.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &models.LoginData{Token: token, User: user}, nil
}
