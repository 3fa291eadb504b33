package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elearning-marketplace/internal/auth"
	"elearning-marketplace/internal/config"
	"elearning-marketplace/internal/database"
	"elearning-marketplace/internal/handlers"
	"elearning-marketplace/internal/middleware"
	"elearning-marketplace/internal/repositories"
	"elearning-marketplace/internal/services"
)

const (
	loginAttempts    = 5
	loginWindow      = 15 * time.Minute
	shutdownDeadline = 10 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db := database.MustConnect(database.Config{
		URL:          cfg.Database.URL,
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.DBName,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.DB)
	courseRepo := repositories.NewCourseRepository(db.DB)
	reviewRepo := repositories.NewReviewRepository(db.DB)
	enrollmentRepo := repositories.NewEnrollmentRepository(db.DB)

	// Initialize services
	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, tokenTTL)

	authService := services.NewAuthService(userRepo, tokens)
	courseService := services.NewCourseService(courseRepo, reviewRepo)
	enrollmentService := services.NewEnrollmentService(courseRepo, enrollmentRepo)

	loginLimiter := middleware.NewLoginRateLimiter(loginAttempts, loginWindow)
	defer loginLimiter.Stop()

	r := handlers.NewAPIRouter(handlers.APIRouterConfig{
		Auth:           handlers.NewAuthHandler(authService, tokenTTL, cfg.Server.Env == "production"),
		Course:         handlers.NewCourseHandler(courseService),
		Payment:        handlers.NewPaymentHandler(enrollmentService),
		Profile:        handlers.NewProfileHandler(courseService),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens),
		LoginLimiter:   loginLimiter,
		CORS:           middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	log.Printf("API server starting on %s (Environment: %s)", srv.Addr, cfg.Server.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("API server stopped")
}
