package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DartAPIKey string
	Port       string
}

// LoadConfig reads configuration from environment variables (.env file).
// The DART credential is mandatory: without it the process must not start.
func LoadConfig() (*Config, error) {
	// Load .env file. In production, env variables are often set directly.
	_ = godotenv.Load()

	key := getEnv("DART_API_KEY", "")
	if key == "" {
		return nil, fmt.Errorf("DART_API_KEY 환경 변수가 설정되지 않았습니다")
	}

	return &Config{
		DartAPIKey: key,
		Port:       getEnv("PORT", "8080"),
	}, nil
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
