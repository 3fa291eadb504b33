package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
)

// Storefront session layout
const (
	SessionName     = "session"
	SessionTokenKey = "token"
	SessionUserKey  = "user"
	SessionCartKey  = "cart"

	loginRedirectPath = "/login"
)

const TokenContextKey contextKey = "token"

// SessionMiddleware guards storefront routes that need a signed-in user
type SessionMiddleware struct {
	store sessions.Store
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(store sessions.Store) *SessionMiddleware {
	return &SessionMiddleware{
		store: store,
	}
}

// RequireToken rejects requests whose session holds no API token and
// exposes the token to handlers through the context.
func (m *SessionMiddleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			// a cookie signed with an old key; start over
			session.Options.MaxAge = -1
			if err := session.Save(r, w); err != nil {
				log.Printf("[%s] session error: %v", GetRequestID(r.Context()), err)
			}
		}

		token, _ := session.Values[SessionTokenKey].(string)
		if token == "" {
			if IsHTMXRequest(r) {
				w.Header().Set("HX-Redirect", loginRedirectPath)
			}
			writeJSONError(w, http.StatusUnauthorized, "Please log in to continue")
			return
		}

		ctx := context.WithValue(r.Context(), TokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTokenFromContext returns the API token placed by RequireToken
func GetTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenContextKey).(string)
	return token
}
