package textgen

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"companion/internal/companionerrors"
)

// geminiModel adapts google.golang.org/genai to chatModel. Grounded on the
// teacher's pkg/llm/gemini/client.go for client construction and message
// conversion, but calling the SDK's non-streaming Models.GenerateContent
// (used non-streaming elsewhere in the pack by
// intelligencedev-manifold/internal/llm/google/client.go) instead of the
// teacher's GenerateContentStream — C2 never needs partial output.
type geminiModel struct {
	client *genai.Client
	model  string
}

// newGeminiModel builds a Gemini-backed chatModel.
func newGeminiModel(ctx context.Context, apiKey, model string) (chatModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: init gemini client: %w", companionerrors.ErrGeneratorUnavailable, err)
	}
	return &geminiModel{client: client, model: model}, nil
}

func (g *geminiModel) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(userPrompt, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleModel),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return extractGeminiText(resp)
}

func (g *geminiModel) completeVision(ctx context.Context, systemPrompt, question string, imageBytes []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromBytes(imageBytes, mimeType, genai.RoleUser),
		genai.NewContentFromText(question, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleModel),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini vision generate: %w", err)
	}
	return extractGeminiText(resp)
}

func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini response had no candidates")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}
