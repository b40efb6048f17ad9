package intent

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned when the OpenAI generator has no API key.
var ErrMissingAPIKey = errors.New("openai api key is required")

// OpenAIConfig configures an OpenAIGenerator.
type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the API root, for proxies and compatible servers.
	BaseURL string
}

// OpenAIGenerator implements Generator with the OpenAI chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator for the configured model.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Generate sends prompt as a single user message and returns the first
// choice's content.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
