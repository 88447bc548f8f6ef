package imagepipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"companion/internal/textgen"
)

// diagramRequestTimeout bounds Strategy B's diagram-source request to the
// text model (spec §4.4 step 1).
const diagramRequestTimeout = 10 * time.Second

const diagramSourceSystemPrompt = "You produce diagram source code only, in a structured diagram language " +
	"(flowchart, sequence, class, state, or entity-relationship). Respond with a single fenced code block " +
	"containing only the diagram source, no commentary."

const diagramSourceUserTemplate = "Context: %s\n\nExplanation: %s\n\nProduce a diagram that illustrates this."

// diagramStrategy asks a text model for diagram source and hands it to an
// external renderer. Grounded on spec §4.4 Strategy B; the text-model call
// reuses textgen.RawModel (the same provider-dispatch machinery C2 uses)
// rather than duplicating per-provider client code.
type diagramStrategy struct {
	model    textgen.RawModel
	renderer *renderer
}

func newDiagramStrategy(model textgen.RawModel, rendererBaseURL string) *diagramStrategy {
	return &diagramStrategy{model: model, renderer: newRenderer(rendererBaseURL)}
}

// generate returns rendered PNG bytes, or nil if no diagram source could be
// extracted or the renderer produced nothing usable.
func (s *diagramStrategy) generate(ctx context.Context, userContext, priorText string) []byte {
	reqCtx, cancel := context.WithTimeout(ctx, diagramRequestTimeout)
	defer cancel()

	raw, err := s.model.Complete(reqCtx, diagramSourceSystemPrompt, fmt.Sprintf(diagramSourceUserTemplate, userContext, priorText))
	if err != nil {
		slog.Warn("diagram source request failed", "error", err)
		return nil
	}

	source, ok := extractDiagramSource(raw)
	if !ok {
		return nil
	}

	return s.renderer.fetch(ctx, source)
}
