// Package textgen implements the companion's text generator (spec component
// C2): prompt construction, provider dispatch, and post-filtering for the
// five text operations the rest of the system calls into. Grounded on the
// teacher's pkg/llm package (provider abstraction, registry-of-clients
// shape) but narrowed to simple string-in/string-out calls — this component
// never streams partial output to a UI the way the teacher's Telegram
// channel does, so there is no StreamChunk/StreamHandler machinery here.
package textgen

import "context"

// RequestContext carries the optional book/author/chapter header data a
// prompt includes when present (spec §4.2 "Prompt construction rules").
type RequestContext struct {
	Book    string
	Author  string
	Chapter string
}

// Generator is the C2 contract. Every method may return
// companionerrors.ErrGeneratorUnavailable (no provider configured/reachable)
// or companionerrors.ErrGeneration (the provider was reached but failed) and
// every method is cancellable via ctx.
type Generator interface {
	// ShortExplain produces a 1-2 sentence reply, truncated to 200 runes,
	// suitable for the device's constrained dialog.
	ShortExplain(ctx context.Context, text string, rc RequestContext) (string, error)

	// LongExplain produces a multi-paragraph analysis for the channel. The
	// prompt forbids ASCII-art diagrams and code fences; the output is also
	// post-filtered to strip any that slip through.
	LongExplain(ctx context.Context, text string, rc RequestContext) (string, error)

	// FollowUp answers a question about priorContextMessage, the text body
	// of the message being replied to. wantsVisual instructs the model not
	// to attempt its own text diagram when a separate image will follow.
	FollowUp(ctx context.Context, question, priorContextMessage string, wantsVisual bool) (string, error)

	// GeneralAnswer answers a context-free question under the same
	// visual-exclusion rule as FollowUp.
	GeneralAnswer(ctx context.Context, question string, wantsVisual bool) (string, error)

	// VisionAnswer answers a question about an image.
	VisionAnswer(ctx context.Context, imageBytes []byte, mimeType, question string) (string, error)
}
