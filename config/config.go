package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	// Database
	DatabaseURL string

	// Server
	ServerPort string

	// External sensor feed
	FeedAddr string

	// CSV snapshot directory
	ExportDir string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost/sched_sim?sslmode=disable"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		FeedAddr:    getEnv("FEED_ADDR", ":9000"),
		ExportDir:   getEnv("EXPORT_DIR", "results"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
