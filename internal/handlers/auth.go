package handlers

import (
	"net/http"
	"time"

	"elearning-marketplace/internal/middleware"
	"elearning-marketplace/internal/models"
	"elearning-marketplace/internal/services"
)

// AuthHandler handles signup and login
type AuthHandler struct {
	authService  services.AuthServiceInterface
	tokenTTL     time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthServiceInterface, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "User registered successfully", user)
}

// Login handles POST /auth/login. The token is returned in the body and
// also set as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	data, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    data.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	writeSuccess(w, http.StatusOK, "User Login Success", data)
}
