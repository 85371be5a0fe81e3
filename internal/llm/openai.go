package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/sozercan/legal-simplify/internal/config"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/"
	// Gemini serves an OpenAI-compatible chat completions API.
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/openai/"

	defaultOpenAIModel = "gpt-4o-mini"
	defaultGeminiModel = "gemini-1.5-flash"
)

// OpenAI client implementation, also used for Azure OpenAI and Gemini.
type OpenAI struct {
	client *openai.Client
	cfg    config.LLMConfig
	model  string
}

func NewOpenAI(cfg config.LLMConfig) (*OpenAI, error) {
	var (
		client *openai.Client
		model  = cfg.Model
	)

	switch cfg.Provider {
	case ProviderAzure:
		if cfg.APIEndpoint == "" {
			return nil, fmt.Errorf("azure provider requires LLM_ENDPOINT")
		}
		client = openai.NewClient(
			azure.WithEndpoint(cfg.APIEndpoint, cfg.APIVersion),
			azure.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(cfg.MaxRetries),
		)
		if model == "" {
			model = cfg.DeploymentName
		}
	case ProviderGemini:
		client = openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(withTrailingSlash(orDefault(cfg.APIEndpoint, geminiEndpoint))),
			option.WithMaxRetries(cfg.MaxRetries),
		)
		model = orDefault(model, defaultGeminiModel)
	default: // "openai"
		client = openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(withTrailingSlash(orDefault(cfg.APIEndpoint, openAIEndpoint))),
			option.WithMaxRetries(cfg.MaxRetries),
		)
		model = orDefault(model, defaultOpenAIModel)
	}

	return &OpenAI{
		client: client,
		cfg:    cfg,
		model:  model,
	}, nil
}

func (o *OpenAI) Generate(ctx context.Context, prompt string, opts ...Option) (*Response, error) {
	if o.cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	// Apply options
	options := &Options{
		Model:       o.model,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	// options.JSONOutput is not sent: not every endpoint behind this client
	// accepts response_format, so JSON comes from the prompt alone.
	resp, err := o.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model: openai.F(options.Model),
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			}),
			Temperature: openai.F(options.Temperature),
			MaxTokens:   openai.F(options.MaxTokens),
		},
	)
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
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
