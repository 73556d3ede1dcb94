package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// service configuration loaded from environment variables
type Config struct {
	Port            string
	Provider        string // "groq" or "gemini"
	SessionBackend  string // "memory" or "redis"
	RedisAddr       string
	RedisPassword   string
	SessionTTL      time.Duration // 0 = no expiry
	HistoryMaxTurns int           // 0 = unlimited
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:            getEnvOrDefault("PORT", "8085"),
		Provider:        getEnvOrDefault("MODEL_PROVIDER", "groq"),
		SessionBackend:  getEnvOrDefault("SESSION_BACKEND", "memory"),
		RedisAddr:       getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		SessionTTL:      getEnvDuration("SESSION_TTL", 0),
		HistoryMaxTurns: getEnvInt("HISTORY_MAX_TURNS", 0),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "groq" && config.Provider != "gemini" {
		return errors.New("unsupported model provider: " + config.Provider + ". Currently supported: groq, gemini")
	}
	if config.SessionBackend != "memory" && config.SessionBackend != "redis" {
		return errors.New("unsupported session backend: " + config.SessionBackend + ". Currently supported: memory, redis")
	}
	if config.HistoryMaxTurns < 0 {
		return errors.New("HISTORY_MAX_TURNS must not be negative")
	}
	// provider credentials are validated by the provider's own config loader
	return nil
}

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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
