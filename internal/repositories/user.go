package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"elearning-marketplace/internal/models"
)

// UserRepository handles user data operations
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, account_type, image, created_at, updated_at`

// Create inserts a user. passwordHash must already be hashed.
func (r *UserRepository) Create(ctx context.Context, req *models.UserCreateRequest, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, account_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query,
		req.FirstName,
		req.LastName,
		strings.ToLower(req.Email),
		passwordHash,
		req.AccountType,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user with email %s: %w", req.Email, models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// List returns up to limit users ordered by id
func (r *UserRepository) List(ctx context.Context, limit int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.AccountType,
		&user.Image,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
