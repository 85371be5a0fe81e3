package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sozercan/legal-simplify/apimodels"
	"github.com/sozercan/legal-simplify/internal/llm"
)

type Analyzer struct {
	llmProvider llm.Provider
	opts        []llm.Option
}

func New(llmProvider llm.Provider, opts ...llm.Option) *Analyzer {
	return &Analyzer{
		llmProvider: llmProvider,
		opts:        append([]llm.Option{llm.WithJSONOutput()}, opts...),
	}
}

// Analyze asks the model to simplify text and coerces whatever it returns.
// Only a failed model call is an error; a malformed reply is not.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*apimodels.AnalysisResult, error) {
	slog.InfoContext(ctx, "starting analysis", "chars", len(text))
	startTime := time.Now()

	resp, err := a.llmProvider.Generate(ctx, BuildPrompt(text), a.opts...)
	if err != nil {
		slog.ErrorContext(ctx, "LLM analysis failed", "error", err, "duration", time.Since(startTime))
		return nil, fmt.Errorf("LLM analysis failed: %w", err)
	}

	slog.DebugContext(ctx, "LLM replied", "content", resp.Content)
	result := Coerce(resp.Content)

	slog.InfoContext(ctx, "analysis completed",
		"model", resp.Model,
		"tokens", resp.Usage.TotalTokens,
		"duration", time.Since(startTime),
		"obligations", len(result.Obligations),
		"risks", len(result.Risks),
		"benefits", len(result.Benefits),
	)
	return &result, nil
}
