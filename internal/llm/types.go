package llm

import (
	"context"
	"errors"
)

var (
	// ErrMissingCredential is returned on every call when the provider was
	// built without an API key.
	ErrMissingCredential = errors.New("missing LLM API key")

	// ErrEmptyCompletion means the upstream answered without any choices.
	ErrEmptyCompletion = errors.New("no completion returned")
)

type Provider interface {
	// Generate sends a single user prompt and returns the model's text reply
	Generate(ctx context.Context, prompt string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	// JSONOutput asks the upstream for a JSON object when it supports it
	JSONOutput bool
}

// WithModel overrides the configured model for one call.
func WithModel(model string) Option {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

// WithJSONOutput requests a JSON object response.
func WithJSONOutput() Option {
	return func(o *Options) { o.JSONOutput = true }
}

type Response struct {
	Content string
	Model   string
	Usage   Usage
}
