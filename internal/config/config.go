package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Storefront StorefrontConfig
	Database   DatabaseConfig
	API        APIConfig
	Auth       AuthConfig
	Session    SessionConfig
	CORS       CORSConfig
	Seed       SeedConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type StorefrontConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
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

// HasConnectionInfo reports whether enough is configured to build a DSN.
func (c DatabaseConfig) HasConnectionInfo() bool {
	return c.URL != "" || (c.Host != "" && c.DBName != "")
}

// APIConfig points the storefront at the marketplace API
type APIConfig struct {
	BaseURL string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

type SessionConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SeedConfig holds options for the dev-only seeding tools
type SeedConfig struct {
	CourseID string // empty means "first course found"
}

const DefaultAPIBaseURL = "http://localhost:4000/api/v1"

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "4000"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Storefront: StorefrontConfig{
			Port: getEnv("STOREFRONT_PORT", "3000"),
			Host: getEnv("STOREFRONT_HOST", "localhost"),
		},
		Database: parseDatabaseConfig(),
		API: APIConfig{
			BaseURL: getFirstEnv(DefaultAPIBaseURL, "API_BASE_URL", "REACT_APP_BASE_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "dev-secret-please-change"),
			TokenTTLHours: getEnvAsInt("JWT_EXPIRES_HOURS", 24),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Seed: SeedConfig{
			CourseID: getEnv("COURSE_ID", ""),
		},
	}

	return config, nil
}

func parseDatabaseConfig() DatabaseConfig {
	// MONGODB_URI / MONGODB_URL are the names older deployments still export
	databaseURL := getFirstEnv("", "DATABASE_URL", "MONGODB_URI", "MONGODB_URL")
	if databaseURL != "" {
		return parseDatabaseURL(databaseURL)
	}

	// Fall back to individual environment variables
	return DatabaseConfig{
		Host:         getEnv("DB_HOST", ""),
		Port:         getEnvAsInt("DB_PORT", 5432),
		User:         getEnv("DB_USER", "postgres"),
		Password:     getEnv("DB_PASSWORD", ""),
		DBName:       getEnv("DB_NAME", ""),
		SSLMode:      getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
	}
}

func parseDatabaseURL(databaseURL string) DatabaseConfig {
	config := DatabaseConfig{
		URL:          databaseURL,
		MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	config.Host = u.Hostname()
	if u.Port() != "" {
		config.Port, _ = strconv.Atoi(u.Port())
	} else {
		config.Port = 5432
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	config.DBName = strings.TrimPrefix(u.Path, "/")

	config.SSLMode = u.Query().Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getFirstEnv returns the first non-empty value among keys
func getFirstEnv(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
