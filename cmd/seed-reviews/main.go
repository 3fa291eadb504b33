package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"elearning-marketplace/internal/config"
	"elearning-marketplace/internal/database"
	"elearning-marketplace/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if !cfg.Database.HasConnectionInfo() {
		log.Println("❌ No database connection string found. Set DATABASE_URL (or MONGODB_URI).")
		os.Exit(1)
	}

	seeder := &seed.ReviewSeeder{Out: os.Stdout}
	if cfg.Seed.CourseID != "" {
		courseID, err := strconv.ParseInt(cfg.Seed.CourseID, 10, 64)
		if err != nil || courseID <= 0 {
			log.Printf("❌ Invalid COURSE_ID %q", cfg.Seed.CourseID)
			os.Exit(1)
		}
		seeder.CourseID = &courseID
	}

	db := database.MustConnect(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	seeder.DB = db.DB

	if _, err := seeder.Run(context.Background()); err != nil {
		log.Printf("❌ Seeding failed: %v", err)
		db.Close()
		os.Exit(1)
	}

	db.Close()
	fmt.Println("Done.")
}
