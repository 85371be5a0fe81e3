package llm

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/sozercan/legal-simplify/internal/config"
)

const (
	compatEndpoint     = "https://openrouter.ai/api/v1"
	defaultCompatModel = "google/gemini-flash-1.5"
)

// Compat talks to OpenAI-compatible gateways such as OpenRouter or Groq and
// asks them for JSON-object responses.
type Compat struct {
	client *goopenai.Client
	cfg    config.LLMConfig
	model  string
}

func NewCompat(cfg config.LLMConfig) *Compat {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimSuffix(orDefault(cfg.APIEndpoint, compatEndpoint), "/")

	return &Compat{
		client: goopenai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
		model:  orDefault(cfg.Model, defaultCompatModel),
	}
}

func (c *Compat) Generate(ctx context.Context, prompt string, opts ...Option) (*Response, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	options := &Options{
		Model:       c.model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	req := goopenai.ChatCompletionRequest{
		Model: options.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(options.Temperature),
		MaxTokens:   int(options.MaxTokens),
	}
	if options.JSONOutput {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: Usage{
			PromptTokens:     int64(resp.Usage.PromptTokens),
			CompletionTokens: int64(resp.Usage.CompletionTokens),
			TotalTokens:      int64(resp.Usage.TotalTokens),
		},
	}, nil
}
