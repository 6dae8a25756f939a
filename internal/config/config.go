package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string
	Port string
	Env  string
}

// DatabaseConfig holds database connection settings. An empty URL
// means no database: the server falls back to the in-memory store.
type DatabaseConfig struct {
	URL string
}

// SessionConfig holds session cookie settings
type SessionConfig struct {
	Secret string
}

// Load reads configuration from the environment, with an optional
// .env file for development
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "dev-session-secret-change-me"),
		},
	}

	return cfg, nil
}

// IsDevelopment returns true outside production deployments
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
