package imagepipeline

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// strategyATimeout bounds Strategy A's direct image-model call (spec §4.4).
const strategyATimeout = 15 * time.Second

const imagePromptTemplate = "Produce a clean, labeled, whiteboard-style technical diagram that helps explain the " +
	"following. If a visualization would not aid understanding, respond with no image at all.\n\n" +
	"Context: %s\n\nExplanation: %s"

// directImageModel wraps a multimodal image-producing Gemini model for
// Strategy A. Grounded on the teacher's pkg/llm/gemini/client.go for client
// construction; inline-data extraction is grounded on the teacher's
// ImageSource/NewImageBlock handling in pkg/llm/messages.go, which is the
// pack's only example of carrying raw image bytes through a message.
type directImageModel struct {
	client *genai.Client
	model  string
}

func newDirectImageModel(ctx context.Context, apiKey, model string) (*directImageModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init image model client: %w", err)
	}
	return &directImageModel{client: client, model: model}, nil
}

// generate returns inline image bytes, or nil bytes with a nil error if the
// model responded with no image — a legitimate outcome, not a failure.
func (d *directImageModel) generate(ctx context.Context, userContext, priorText string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, strategyATimeout)
	defer cancel()

	prompt := fmt.Sprintf(imagePromptTemplate, userContext, priorText)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := d.client.Models.GenerateContent(ctx, d.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return nil, fmt.Errorf("image model call: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, nil
}
