package imagepipeline

import (
	"context"
	"log/slog"

	"companion/internal/config"
	"companion/internal/textgen"
)

// pipeline composes Strategy A and Strategy B per spec §4.4's policy: if a
// direct image model is configured, try it first; fall back to Strategy B
// when Strategy A is unconfigured or returns no image and a renderer is
// configured. It attempts at most one image per call and never lets a
// failure in either strategy propagate — every error path resolves to a
// nil image.
// directGenerator and fallbackGenerator narrow directImageModel and
// diagramStrategy to their call shape so tests can substitute fakes without
// constructing real provider/renderer clients.
type directGenerator interface {
	generate(ctx context.Context, userContext, priorText string) ([]byte, error)
}

type fallbackGenerator interface {
	generate(ctx context.Context, userContext, priorText string) []byte
}

type pipeline struct {
	direct   directGenerator
	fallback fallbackGenerator
}

// New builds a Pipeline from configuration. Either strategy may be absent:
// with neither configured, TryGenerate always returns (nil, nil), matching
// spec §4.8's "missing non-essential features degrade gracefully" rule.
func New(ctx context.Context, imgCfg config.AIImageConfig, textCfg config.AITextConfig, rendererCfg config.DiagramRendererConfig) (Pipeline, error) {
	p := &pipeline{}

	if imgCfg.ImageModelID != "" {
		direct, err := newDirectImageModel(ctx, textCfg.APIKey.Reveal(), imgCfg.ImageModelID)
		if err != nil {
			return nil, err
		}
		p.direct = direct
	}

	if rendererCfg.BaseURL != "" {
		model, err := textgen.NewRawModelFromConfig(ctx, textCfg)
		if err != nil {
			return nil, err
		}
		p.fallback = newDiagramStrategy(model, rendererCfg.BaseURL)
	}

	return p, nil
}

func (p *pipeline) TryGenerate(ctx context.Context, userContext, priorText string) ([]byte, error) {
	if p.direct != nil {
		img, err := p.direct.generate(ctx, userContext, priorText)
		if err != nil {
			slog.Warn("direct image strategy failed, falling back", "error", err)
		} else if img != nil {
			return img, nil
		}
	}

	if p.fallback != nil {
		if img := p.fallback.generate(ctx, userContext, priorText); img != nil {
			return img, nil
		}
	}

	return nil, nil
}
