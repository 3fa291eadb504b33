package auth

import (
	"testing"
	"time"

	"elearning-marketplace/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{ID: 42, Email: "asha@example.com", AccountType: models.AccountStudent}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Generate(testUser())
	require.NoError(t, err)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, models.AccountStudent, claims.AccountType)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenManager_Rejects(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	valid, err := manager.Generate(testUser())
	require.NoError(t, err)

	expired := NewTokenManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Generate(testUser())
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 42}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		manager *TokenManager
		token   string
	}{
		{"wrong secret", NewTokenManager("other-secret", time.Hour), valid},
		{"expired", manager, expiredToken},
		{"unsigned", manager, none},
		{"garbage", manager, "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.manager.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	manager := NewTokenManager("s", 0)
	assert.Equal(t, 24*time.Hour, manager.ttl)
}
