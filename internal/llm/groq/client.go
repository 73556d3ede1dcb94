package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"prepcoach/coach/internal/llm"
	"prepcoach/coach/internal/models"
)

// Client talks to the Groq OpenAI-compatible chat completions API.
type Client struct {
	httpClient *http.Client
	config     *Config
}

func NewClient(config *Config) (*Client, error) {
	return &Client{
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // LLM responses can be slow
		},
		config: config,
	}, nil
}

// wire types for the chat completions endpoint
type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []chatCompletionMessage `json:"messages"`
	Temperature float64                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens"`
	Stream      bool                    `json:"stream"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one chat completion request and returns the raw reply text.
func (c *Client) Complete(ctx context.Context, request *models.ModelRequest) (*models.ModelReply, error) {
	messages := make([]chatCompletionMessage, 0, len(request.Messages)+1)
	messages = append(messages, chatCompletionMessage{
		Role:    models.RoleSystem,
		Content: request.SystemPrompt,
	})
	for _, turn := range request.Messages {
		messages = append(messages, chatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to encode request",
			Err:      err,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build request",
			Err:      err,
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		code := llm.ErrCodeServiceDown
		if errors.Is(err, context.DeadlineExceeded) {
			code = llm.ErrCodeTimeout
		}
		return nil, &llm.ProviderError{
			Provider: "groq",
			Code:     code,
			Message:  "Request to Groq API failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to read Groq API response",
			Err:      err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp.StatusCode, body)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to decode Groq API response",
			Err:      err,
		}
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	model := completion.Model
	if model == "" {
		model = c.config.Model
	}

	return &models.ModelReply{
		Content: completion.Choices[0].Message.Content,
		Model:   model,
	}, nil
}

// statusError maps HTTP failures onto provider error codes
func (c *Client) statusError(status int, body []byte) *llm.ProviderError {
	var detail chatCompletionResponse
	message := fmt.Sprintf("Groq API returned status %d", status)
	if err := json.Unmarshal(body, &detail); err == nil && detail.Error != nil {
		message = detail.Error.Message
	}

	code := llm.ErrCodeServiceDown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = llm.ErrCodeAPIKey
	case status == http.StatusTooManyRequests:
		code = llm.ErrCodeRateLimit
	case status >= 400 && status < 500:
		code = llm.ErrCodeInvalidInput
	}

	return &llm.ProviderError{
		Provider: "groq",
		Code:     code,
		Message:  message,
	}
}

func (c *Client) GetProviderName() string {
	return "groq"
}
