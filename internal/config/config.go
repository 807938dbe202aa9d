package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Redis (optional; in-memory stores are used when empty)
	RedisURL string

	// CORS
	AllowedOrigins []string

	// Upstream booking API
	HotelAPIBaseURL string
	HotelAPIToken   string
	HotelAPITimeout time.Duration

	// Search sessions
	SessionTTL time.Duration

	// Checkout
	CheckoutLockTTL time.Duration

	// Logging
	LogLevel string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),

		// Upstream booking API
		HotelAPIBaseURL: getEnv("HOTEL_API_BASE_URL", "http://localhost:4000"),
		HotelAPIToken:   getEnv("HOTEL_API_TOKEN", ""),
		HotelAPITimeout: parseDuration(getEnv("HOTEL_API_TIMEOUT", "10s"), 10*time.Second),

		// Search sessions
		SessionTTL: parseDuration(getEnv("SESSION_TTL", "30m"), 30*time.Minute),

		// Checkout
		CheckoutLockTTL: parseDuration(getEnv("CHECKOUT_LOCK_TTL", "30s"), 30*time.Second),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	// Simple split by comma
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if start < i {
				result = append(result, s[start:i])
			}
			start = i + 1
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
