package textgen

import (
	"context"
	"errors"
	"fmt"

	"companion/internal/companionerrors"
)

// generator is the concrete Generator, wired to a single chatModel. The
// rest of the system only ever sees the Generator interface, matching the
// teacher's preference for constructing a concrete provider client behind
// an llm.LLMClient-shaped seam (pkg/llm/registry.go).
type generator struct {
	model chatModel
}

// New builds a Generator over the given provider model, wrapped in a single
// retry-on-transient-failure decorator.
func New(model chatModel) Generator {
	return &generator{model: withRetry(model)}
}

func (g *generator) ShortExplain(ctx context.Context, text string, rc RequestContext) (string, error) {
	sys, user := shortPrompt(text, rc)
	out, err := g.model.complete(ctx, sys, user)
	if err != nil {
		return "", generationError(err)
	}
	return sanitizeShort(out), nil
}

func (g *generator) LongExplain(ctx context.Context, text string, rc RequestContext) (string, error) {
	sys, user := longPrompt(text, rc)
	out, err := g.model.complete(ctx, sys, user)
	if err != nil {
		return "", generationError(err)
	}
	return stripAsciiArt(out), nil
}

func (g *generator) FollowUp(ctx context.Context, question, priorContextMessage string, wantsVisual bool) (string, error) {
	sys, user := followUpPrompt(question, priorContextMessage, wantsVisual)
	out, err := g.model.complete(ctx, sys, user)
	if err != nil {
		return "", generationError(err)
	}
	return stripAsciiArt(out), nil
}

func (g *generator) GeneralAnswer(ctx context.Context, question string, wantsVisual bool) (string, error) {
	sys, user := generalPrompt(question, wantsVisual)
	out, err := g.model.complete(ctx, sys, user)
	if err != nil {
		return "", generationError(err)
	}
	return stripAsciiArt(out), nil
}

func (g *generator) VisionAnswer(ctx context.Context, imageBytes []byte, mimeType, question string) (string, error) {
	sys, user := visionPrompt(question)
	out, err := g.model.completeVision(ctx, sys, user, imageBytes, mimeType)
	if err != nil {
		return "", generationError(err)
	}
	return stripAsciiArt(out), nil
}

// generationError wraps a provider-level failure as companionerrors.ErrGeneration
// unless it already carries the more specific companionerrors.ErrGeneratorUnavailable
// sentinel — a provider adapter reports that one directly for a missing or
// misconfigured client, and the two outcomes are mutually exclusive per spec.
func generationError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, companionerrors.ErrGeneratorUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", companionerrors.ErrGeneration, err)
}
