package gemini

import (
	"errors"
	"os"
	"strconv"
)

// holds Gemini-specific configuration
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

func NewConfig() (*Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is required")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash" // default model
	}

	temperature := 0.7
	if val := os.Getenv("MODEL_TEMPERATURE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			temperature = f
		}
	}

	maxTokens := 2048
	if val := os.Getenv("MODEL_MAX_TOKENS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			maxTokens = n
		}
	}

	return &Config{
		APIKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, nil
}
