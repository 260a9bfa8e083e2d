package config

import (
	"os"
)

// Config holds application configuration
type Config struct {
	Port          string
	Environment   string
	RedisURL      string
	CatalogAPIURL string
	NATSURL       string
}

// New creates a new configuration from environment variables
func New() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		RedisURL:      os.Getenv("REDIS_URL"),
		CatalogAPIURL: getEnv("CATALOG_API_URL", "http://127.0.0.1:8000/api"),
		NATSURL:       os.Getenv("NATS_URL"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
