// Package config provides configuration for the ATLAS server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Inference settings
	InferenceURL string
	MaxTokens    int

	// Evidence settings
	NewsAPIURL      string
	NewsAPIKey      string
	ReaderURL       string
	ReaderAPIKey    string
	MaxArticles     int
	EvidenceTimeout time.Duration

	// Result cache
	CacheTTL time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:     getEnv("DATABASE_URL", "file:atlas.db?cache=shared&mode=rwc"),
		InferenceURL:    getEnv("INFERENCE_URL", "https://router.huggingface.co/v1"),
		MaxTokens:       getEnvInt("MAX_TOKENS", 1024),
		NewsAPIURL:      getEnv("NEWS_API_URL", "https://newsapi.org/v2"),
		NewsAPIKey:      getEnv("NEWS_API_KEY", ""),
		ReaderURL:       getEnv("READER_URL", "https://r.jina.ai"),
		ReaderAPIKey:    getEnv("JINA_API_KEY", ""),
		MaxArticles:     getEnvInt("MAX_ARTICLES", 3),
		EvidenceTimeout: time.Duration(getEnvInt("EVIDENCE_TIMEOUT_MS", 10000)) * time.Millisecond,
		CacheTTL:        time.Duration(getEnvInt("CACHE_TTL_MIN", 60)) * time.Minute,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
