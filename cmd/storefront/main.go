package main

import (
	"fmt"
	"log"
	"net/http"

	"elearning-marketplace/internal/config"
	"elearning-marketplace/internal/handlers"
	"elearning-marketplace/internal/middleware"
	"elearning-marketplace/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store
	sessionStore := handlers.NewSessionStore(cfg.Session.Secret, cfg.Server.Env == "production")

	connector, err := services.NewAPIConnector(services.APIConnectorConfig{
		BaseURL: cfg.API.BaseURL,
		Shared:  true,
	})
	if err != nil {
		log.Fatal("Failed to create API connector:", err)
	}

	r := handlers.NewStorefrontRouter(
		handlers.NewStorefrontHandler(connector, sessionStore),
		middleware.NewSessionMiddleware(sessionStore),
	)

	serverAddr := fmt.Sprintf("%s:%s", cfg.Storefront.Host, cfg.Storefront.Port)
	log.Printf("Storefront starting on %s (API: %s)", serverAddr, cfg.API.BaseURL)
	log.Fatal(http.ListenAndServe(serverAddr, r))
}
