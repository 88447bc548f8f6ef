// Package imagepipeline implements the companion's hybrid image-generation
// pipeline (spec component C4): at most one image per user turn, produced
// either directly by a multimodal image model (Strategy A) or by asking a
// text model for a diagram source and handing it to an external renderer
// (Strategy B). No pack example implements a diagram-rendering service, so
// this package's HTTP client is grounded on plain net/http usage rather
// than a specific teacher file (see DESIGN.md).
package imagepipeline

import "context"

// Pipeline is the C4 contract. TryGenerate never returns an error for
// recoverable outcomes — a nil image with a nil error means "no image was
// produced", which is a legitimate, expected outcome, not a failure.
type Pipeline interface {
	// TryGenerate attempts to produce one diagram image for the turn.
	// userContext is the user's request (or highlight + explanation);
	// priorText is the text reply that was just produced. Returns nil
	// bytes, nil error when no image was warranted or producible.
	TryGenerate(ctx context.Context, userContext, priorText string) ([]byte, error)
}
