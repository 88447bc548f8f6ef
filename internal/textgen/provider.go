package textgen

import (
	"context"
	"fmt"

	"companion/internal/companionerrors"
	"companion/internal/config"
)

// NewFromConfig builds a Generator for the configured text provider,
// grounded on the teacher's pkg/llm/loader.go provider-name switch but
// narrowed to the three providers this corpus actually wires (Gemini,
// OpenAI-compatible, Ollama) instead of the teacher's full registry of
// optional providers.
func NewFromConfig(ctx context.Context, cfg config.AITextConfig) (Generator, error) {
	model, err := newModelFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(model), nil
}

func newModelFromConfig(ctx context.Context, cfg config.AITextConfig) (chatModel, error) {
	switch cfg.Provider {
	case "", "gemini":
		return newGeminiModel(ctx, cfg.APIKey.Reveal(), cfg.Model)
	case "openai":
		return newOpenAIModel(cfg.APIKey.Reveal(), cfg.Model, ""), nil
	case "ollama":
		return newOllamaModel(cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("%w: unknown text provider %q", companionerrors.ErrGeneratorUnavailable, cfg.Provider)
	}
}
