package llm

import (
	"fmt"
	"log/slog"

	"github.com/sozercan/legal-simplify/internal/config"
)

const (
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"
	ProviderGemini = "gemini"
	ProviderCompat = "compat"
)

// New builds the provider named by cfg.Provider.
func New(cfg config.LLMConfig) (Provider, error) {
	slog.Info("creating LLM provider", "provider", cfg.Provider, "endpoint", cfg.APIEndpoint)

	switch cfg.Provider {
	case ProviderOpenAI, ProviderAzure, ProviderGemini:
		return NewOpenAI(cfg)
	case ProviderCompat:
		return NewCompat(cfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
