package textgen

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"companion/internal/companionerrors"
)

// openAIModel adapts the official OpenAI Go SDK to chatModel. Grounded on
// the teacher's pkg/llm/openailm/client.go for client construction, but
// calling Chat.Completions.New (non-streaming), the pattern kevingil-blog
// uses for its one-shot text-generation helpers — C2 has no need for the
// teacher's StreamChat/tool-call surface.
type openAIModel struct {
	client *openai.Client
	model  string
}

// newOpenAIModel builds an OpenAI-compatible chatModel. baseURL overrides
// the default endpoint, letting this same adapter serve any
// OpenAI-API-compatible provider the teacher's client supports.
func newOpenAIModel(apiKey, model, baseURL string) chatModel {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &openAIModel{client: &client, model: model}
}

func (o *openAIModel) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	return firstChoice(completion)
}

func (o *openAIModel) completeVision(ctx context.Context, systemPrompt, question string, imageBytes []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageBytes))

	parts := []openai.ChatCompletionContentPartUnionParam{
		{OfText: &openai.ChatCompletionContentPartTextParam{Type: "text", Text: question}},
		{OfImageURL: &openai.ChatCompletionContentPartImageParam{
			Type:     "image_url",
			ImageURL: openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL},
		}},
	}

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Role: "user",
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: parts,
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai vision completion: %w", err)
	}
	return firstChoice(completion)
}

func firstChoice(completion *openai.ChatCompletion) (string, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", companionerrors.ErrGeneration)
	}
	return completion.Choices[0].Message.Content, nil
}
