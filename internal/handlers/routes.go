package handlers

import (
	"net/http"

	"elearning-marketplace/internal/middleware"
	"elearning-marketplace/internal/models"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// APIRouterConfig holds everything mounted by NewAPIRouter
type APIRouterConfig struct {
	Auth           *AuthHandler
	Course         *CourseHandler
	Payment        *PaymentHandler
	Profile        *ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
	LoginLimiter   *middleware.LoginRateLimiter // optional
	CORS           middleware.CORSConfig
}

// NewAPIRouter builds the marketplace API under /api/v1
func NewAPIRouter(cfg APIRouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.CORSMiddleware(cfg.CORS))
	r.Use(middleware.SecurityHeadersMiddleware)

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthCheck("api"))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.Auth.Signup)
			if cfg.LoginLimiter != nil {
				r.With(middleware.LoginRateLimit(cfg.LoginLimiter)).Post("/login", cfg.Auth.Login)
			} else {
				r.Post("/login", cfg.Auth.Login)
			}
		})

		r.Route("/course", func(r chi.Router) {
			r.Get("/getAllCourses", cfg.Course.GetAllCourses)
			r.Get("/getReviews", cfg.Course.GetAllReviews)
			r.Get("/{courseID}", cfg.Course.GetCourseDetails)
			r.Get("/{courseID}/reviews", cfg.Course.GetCourseReviews)
		})

		r.Route("/payment", func(r chi.Router) {
			r.Use(cfg.AuthMiddleware.JWTAuth)
			r.Use(cfg.AuthMiddleware.RequireAccountType(models.AccountStudent))
			r.Post("/capturePayment", cfg.Payment.CapturePayment)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(cfg.AuthMiddleware.JWTAuth)
			r.Get("/getEnrolledCourses", cfg.Profile.GetEnrolledCourses)
		})
	})

	return r
}

// NewStorefrontRouter builds the buyer-facing routes
func NewStorefrontRouter(h *StorefrontHandler, sessionMiddleware *middleware.SessionMiddleware) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.SecurityHeadersMiddleware)

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", healthCheck("storefront"))
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.ViewCart)
		r.Post("/add", h.AddToCart)
		r.Post("/remove", h.RemoveFromCart)
		r.With(sessionMiddleware.RequireToken).Post("/checkout", h.Checkout)
	})

	r.With(sessionMiddleware.RequireToken).Get("/dashboard/enrolled-courses", h.EnrolledCourses)

	return r
}

func healthCheck(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": service})
	}
}
