package gemini

import (
	"context"

	"google.golang.org/genai"

	"prepcoach/coach/internal/llm"
	"prepcoach/coach/internal/models"
)

// Client represents a Gemini LLM client

type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

// Complete runs one multi-turn chat completion against the Gemini API.
func (c *Client) Complete(ctx context.Context, request *models.ModelRequest) (*models.ModelReply, error) {
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.config.Model,
		contentsFromTurns(request.Messages),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: request.SystemPrompt}},
			},
			Temperature:     genai.Ptr(float32(c.config.Temperature)),
			MaxOutputTokens: genai.Ptr(int32(c.config.MaxTokens)),
		},
	)
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to generate reply",
			Err:      err,
		}
	}

	if result == nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	reply, err := result.Text()
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if reply == "" {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	return &models.ModelReply{
		Content: reply,
		Model:   c.config.Model,
	}, nil
}

// contentsFromTurns maps conversation turns to the Gemini wire format.
// Gemini names the assistant role "model".
func contentsFromTurns(turns []models.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}
	return contents
}

func (c *Client) GetProviderName() string {
	return "gemini"
}
