package textgen

import (
	"context"

	"companion/internal/config"
)

// RawModel exposes the provider-dispatch machinery this package already
// builds (Gemini/OpenAI/Ollama client construction, retry-on-transient)
// to other components that need a bare single-turn completion call without
// C2's prompt templates or post-filters — namely the image pipeline's
// Strategy B diagram-source request (spec §4.4), which asks the same text
// model for raw diagram markup rather than a reading explanation.
type RawModel interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type rawModel struct {
	model chatModel
}

func (r *rawModel) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return r.model.complete(ctx, systemPrompt, userPrompt)
}

// NewRawModelFromConfig builds a RawModel over the same provider
// construction used by NewFromConfig.
func NewRawModelFromConfig(ctx context.Context, cfg config.AITextConfig) (RawModel, error) {
	model, err := newModelFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &rawModel{model: withRetry(model)}, nil
}
