package middleware

import (
	"context"
	"net/http"
	"strings"

	"elearning-marketplace/internal/auth"
	"elearning-marketplace/internal/models"
)

type contextKey string

const (
	ClaimsContextKey contextKey = "claims"

	// TokenCookieName is the cookie the login endpoint sets alongside the
	// token in the response body.
	TokenCookieName = "token"
)

// AuthMiddleware verifies bearer tokens
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// JWTAuth rejects requests without a valid token. The token is read from
// the Authorization header first, then from the token cookie.
func (m *AuthMiddleware) JWTAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			writeJSONError(w, http.StatusUnauthorized, "Token is missing")
			return
		}

		claims, err := m.tokens.Parse(tokenString)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "Token is invalid")
			return
		}

		next.ServeHTTP(w, r.WithContext(SetClaimsContext(r.Context(), claims)))
	})
}

// RequireAccountType allows only the listed account types through.
// It must run after JWTAuth.
func (m *AuthMiddleware) RequireAccountType(types ...models.AccountType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaimsFromContext(r.Context())
			if claims == nil {
				writeJSONError(w, http.StatusUnauthorized, "Token is missing")
				return
			}

			for _, allowed := range types {
				if claims.AccountType == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeJSONError(w, http.StatusForbidden, "This is a protected route for "+joinTypes(types))
		})
	}
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func joinTypes(types []models.AccountType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// GetClaimsFromContext retrieves the token claims from request context
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// SetClaimsContext sets the claims in the context (for testing)
func SetClaimsContext(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// IsHTMXRequest checks if the request is from HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
