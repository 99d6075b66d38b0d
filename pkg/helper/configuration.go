package helper

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	Port       string
	DBPath     string
	DBInMemory bool
	AdminToken string
	SeedCount  int
	GinMode    string
}

// LoadConfigFromEnv loads the configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Port:       getEnvOrDefault("APP_PORT", "8080"),
		DBPath:     getEnvOrDefault("DB_PATH", "products.db"),
		DBInMemory: getEnvBool("DB_IN_MEMORY", false),
		AdminToken: getEnvOrDefault("ADMIN_TOKEN", ""),
		SeedCount:  getEnvInt("SEED_COUNT", 100),
		GinMode:    getEnvOrDefault("GIN_MODE", ""),
	}
}

// getEnvOrDefault returns environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
