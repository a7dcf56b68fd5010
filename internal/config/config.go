// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Config holds everything the server binary needs.
type Config struct {
	// HTTP server
	Port           string
	AllowedOrigins []string

	// Gemini gateway
	GeminiAPIKey    string
	GeminiBaseURL   string
	InsightsModel   string
	ExtractionModel string
	GeminiTimeout   time.Duration

	// Voice capture
	SpeechLocale          language.Tag
	MaxRecognizerRestarts int

	// Logging
	LogLevel string
}

// Load reads configuration from the environment, applying defaults.
// The only hard requirement is a well-formed speech locale.
func Load() (*Config, error) {
	locale, err := language.Parse(getEnv("SPEECH_LOCALE", "tr-TR"))
	if err != nil {
		return nil, fmt.Errorf("parse SPEECH_LOCALE: %w", err)
	}

	return &Config{
		Port:           getEnv("PORT", "8111"),
		AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:8111")),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", ""),
		InsightsModel:   getEnv("GEMINI_INSIGHTS_MODEL", ""),
		ExtractionModel: getEnv("GEMINI_EXTRACTION_MODEL", ""),
		GeminiTimeout:   getEnvDuration("GEMINI_TIMEOUT", 60*time.Second),

		SpeechLocale:          locale,
		MaxRecognizerRestarts: getEnvInt("MAX_RECOGNIZER_RESTARTS", 5),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
