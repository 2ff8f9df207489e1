// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup. It is built once in
// main and passed into constructors; nothing mutates it afterwards.
type Config struct {
	Port         string
	DatabaseURL  string
	EnableDB     bool
	GeminiAPIKey string
	GeminiBase   string

	// FallbackModels is tried in order when live model discovery fails.
	FallbackModels []string

	AuthRequired bool

	ListModelsTimeout time.Duration
	GenerateTimeout   time.Duration
	DirectoryTimeout  time.Duration
}

// DefaultFallbackModels mirrors the static candidate list used when the
// model-listing call is unavailable.
var DefaultFallbackModels = []string{
	"models/gemini-1.5-flash-latest",
	"models/gemini-1.5-flash",
	"models/gemini-2.0-flash-exp",
}

const defaultGeminiBase = "https://generativelanguage.googleapis.com"

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		EnableDB:          strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiBase:        getEnv("GEMINI_BASE_URL", defaultGeminiBase),
		FallbackModels:    splitList(os.Getenv("FALLBACK_MODELS"), DefaultFallbackModels),
		AuthRequired:      strings.EqualFold(getEnv("AUTH_REQUIRED", "false"), "true"),
		ListModelsTimeout: getDuration("LIST_MODELS_TIMEOUT", 5*time.Second),
		GenerateTimeout:   getDuration("GENERATE_TIMEOUT", 30*time.Second),
		DirectoryTimeout:  getDuration("DIRECTORY_TIMEOUT", 3*time.Second),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(val string, fallback []string) []string {
	if val == "" {
		return fallback
	}
	out := []string{}
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
