// Package config loads server configuration from the environment. A local
// .env file is honored when present; real deployments set variables directly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// HTTP server
	Port string

	// Google Cloud / Firebase
	GoogleCloudProject string

	// Backend selection: memory store for local dev, Firestore otherwise.
	UseMemoryStore bool

	// SkipAuth replaces Firebase verification with a mock identity. For
	// seeding and local testing only.
	SkipAuth bool

	// CORS
	AllowedOrigins []string
}

// Load reads configuration from the environment, after loading .env if one
// exists in the working directory.
func Load() *Config {
	// Missing .env is the normal case outside local dev.
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8111"),
		GoogleCloudProject: getEnv("GOOGLE_CLOUD_PROJECT", ""),
		UseMemoryStore:     getEnvBool("USE_MEMORY_STORE", false) || getEnv("ENV", "") == "local",
		SkipAuth:           getEnvBool("SKIP_AUTH", false),
		AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS",
			"http://localhost:1234,http://127.0.0.1:1234")),
	}
}

// Validate returns an error describing every invalid setting.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !c.UseMemoryStore && c.GoogleCloudProject == "" {
		problems = append(problems, "GOOGLE_CLOUD_PROJECT is required when not using the memory store")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
