package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Remote catalog endpoints
	MovieAPIBaseURL   string
	TheaterAPIBaseURL string
	Region            string

	// SMTP for the confirmation email
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	Debug bool
}

// Load reads configuration from the environment, picking up a local
// .env file if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MovieAPIBaseURL:   getEnv("CINESEAT_MOVIE_API", "https://api.cineseat.app/v1"),
		TheaterAPIBaseURL: getEnv("CINESEAT_THEATER_API", "https://api.cineseat.app/v1"),
		Region:            getEnv("CINESEAT_REGION", "US"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "tickets@cineseat.app"),

		Debug: getEnvAsBool("CINESEAT_DEBUG", false),
	}
}

// EmailConfigured reports whether SMTP settings are usable at all.
func (c *Config) EmailConfigured() bool {
	return strings.TrimSpace(c.SMTPHost) != ""
}

func getEnv(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}
