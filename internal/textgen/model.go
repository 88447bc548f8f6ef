package textgen

import "context"

// chatModel is the low-level seam between the prompt/filter logic in this
// package and a specific provider SDK. Each provider adapter (gemini.go,
// openai.go, ollama.go) implements it against its own client type, mirroring
// the teacher's per-provider client split (pkg/llm/gemini, pkg/llm/openailm,
// pkg/llm/ollama) while dropping the streaming/tool-call surface the
// teacher's llm.LLMClient interface carries — C2's contract is a single
// returned string, never a channel of chunks.
type chatModel interface {
	// complete issues a single-turn text completion.
	complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// completeVision issues a single-turn multimodal completion over one
	// image. Providers that cannot do vision return an error wrapping
	// companionerrors.ErrGeneratorUnavailable.
	completeVision(ctx context.Context, systemPrompt, question string, imageBytes []byte, mimeType string) (string, error)
}
