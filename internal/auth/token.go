// Package auth issues and verifies the bearer tokens used by the API.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"elearning-marketplace/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "elearning-marketplace"

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims defines the JWT payload
type Claims struct {
	UserID      int64              `json:"id"`
	Email       string             `json:"email"`
	AccountType models.AccountType `json:"accountType"`
	jwt.RegisteredClaims
}

// TokenManager signs and parses HS256 tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager. A non-positive ttl falls back
// to 24 hours.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate creates a signed token for the user
func (m *TokenManager) Generate(user *models.User) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID:      user.ID,
		Email:       user.Email,
		AccountType: user.AccountType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Parse validates the token and returns its claims
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
