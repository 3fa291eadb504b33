package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// swapped in tests
var (
	driverName = "postgres"
	exitFunc   = os.Exit
)

const pingTimeout = 5 * time.Second

type DB struct {
	*sql.DB
}

type Config struct {
	URL          string // Full database URL
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// ErrNoConnectionString is returned when neither a URL nor host/dbname are set
var ErrNoConnectionString = errors.New("database connection string is not configured")

func (c Config) dsn() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}
	if c.Host == "" || c.DBName == "" {
		return "", ErrNoConnectionString
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode), nil
}

func NewConnection(config Config) (*DB, error) {
	dsn, err := config.dsn()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen, maxIdle := config.MaxOpenConns, config.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	if maxIdle <= 0 {
		maxIdle = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// Connect opens the database and logs the outcome.
func Connect(config Config) (*DB, error) {
	db, err := NewConnection(config)
	if err != nil {
		log.Println("❌ DB Connection Failed")
		log.Println(err)
		return nil, err
	}

	log.Println("✅ DB Connected Successfully")
	return db, nil
}

// MustConnect is the startup bootstrapper: a failed connection terminates
// the process with status 1. There is no retry.
func MustConnect(config Config) *DB {
	db, err := Connect(config)
	if err != nil {
		exitFunc(1)
		return nil
	}
	return db
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// RunMigrations runs all pending database migrations
func (db *DB) RunMigrations(ctx context.Context) error {
	return NewMigrator(db.DB).RunMigrations(ctx)
}

// GetMigrationStatus shows the current migration status
func (db *DB) GetMigrationStatus(ctx context.Context) error {
	return NewMigrator(db.DB).GetMigrationStatus(ctx)
}
