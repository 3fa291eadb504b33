package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"elearning-marketplace/internal/config"
	"elearning-marketplace/internal/database"
)

func main() {
	var (
		statusFlag = flag.Bool("status", false, "Show migration status")
		upFlag     = flag.Bool("up", false, "Run pending migrations")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(dbConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	switch {
	case *statusFlag:
		if err := db.GetMigrationStatus(ctx); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case *upFlag:
		if err := db.RunMigrations(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("All migrations completed successfully!")
	default:
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/migrate -status   # Show migration status")
		fmt.Println("  go run ./cmd/migrate -up       # Run pending migrations")
		os.Exit(1)
	}
}

func dbConfig(cfg *config.Config) database.Config {
	return database.Config{
		URL:          cfg.Database.URL,
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.DBName,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}
}
