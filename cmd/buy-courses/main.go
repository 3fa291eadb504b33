package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"elearning-marketplace/internal/config"
	"elearning-marketplace/internal/models"
	"elearning-marketplace/internal/services"
)

// buy-courses logs in against the API and runs a purchase, the same call
// the storefront checkout makes. Useful for checking a fresh deployment.
func main() {
	var (
		email    = flag.String("email", "", "Student email")
		password = flag.String("password", "", "Student password")
		courses  = flag.String("courses", "", "Comma separated course ids")
	)
	flag.Parse()

	if *email == "" || *password == "" || *courses == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/buy-courses -email student@example.com -password secret -courses 1,2")
		os.Exit(1)
	}

	courseIDs, err := parseIDs(*courses)
	if err != nil {
		log.Fatal("Invalid -courses:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	connector, err := services.NewAPIConnector(services.APIConnectorConfig{BaseURL: cfg.API.BaseURL})
	if err != nil {
		log.Fatal("Failed to create API connector:", err)
	}

	ctx := context.Background()

	resp, err := connector.Send(ctx, "POST", "/auth/login", models.LoginRequest{Email: *email, Password: *password}, nil, nil)
	if err != nil {
		log.Fatal("Login failed:", err)
	}

	var login struct {
		Data models.LoginData `json:"data"`
	}
	if err := resp.Decode(&login); err != nil || login.Data.User == nil {
		log.Fatal("Unexpected login response:", string(resp.Body))
	}
	fmt.Printf("🔑 Logged in as %s\n", login.Data.User.Email)

	purchase := services.NewPurchaseService(connector, &services.LogNotifier{})
	result := purchase.BuyCourse(ctx, services.PurchaseRequest{
		Token:       login.Data.Token,
		Courses:     courseIDs,
		UserDetails: login.Data.User.Details(),
	},
		func(path string) { fmt.Printf("➡️  Next: %s\n", path) },
		nil,
	)

	if !result.Success {
		os.Exit(1)
	}
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("course id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
