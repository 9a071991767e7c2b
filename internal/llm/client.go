// file: internal/llm/client.go
// version: 1.1.0
// guid: 6d5e4f3a-2b1c-4d0e-9f8a-7b6c5d4e3f2a

package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
	"golang.org/x/time/rate"
)

// Generator is the text-generation collaborator: one synchronous
// round trip from a prompt pair to raw response text. Transport and
// auth failures are returned as-is; retrying is the caller's job.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client is an OpenAI-backed Generator. A base URL override points it
// at any OpenAI-compatible provider.
type Client struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

// Config configures the OpenAI client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string  // optional
	RPS     float64 // requests per second cap; 0 means a sane default
}

// NewClient creates an OpenAI-backed Generator.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is not configured")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	return &Client{
		client:  &client,
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), 1),
	}, nil
}

// Generate sends one chat completion request and returns the raw
// response text.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:       shared.ChatModel(c.model),
		Temperature: param.NewOpt(0.2),
		MaxTokens:   param.NewOpt[int64](4000),
	})
	if err != nil {
		return "", fmt.Errorf("LLM API call failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	content := completion.Choices[0].Message.Content
	log.Printf("[DEBUG] llm: received %d bytes from %s", len(content), c.model)
	return content, nil
}
