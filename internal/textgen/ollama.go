package textgen

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"companion/internal/companionerrors"
)

// ollamaModel adapts github.com/ollama/ollama/api to chatModel. Grounded on
// the teacher's pkg/llm/ollama/client.go for client construction and the
// transport tuned to never impose a client-side timeout of its own (local
// models can run long), but calling client.Chat with Stream: false instead
// of the teacher's streaming callback loop.
type ollamaModel struct {
	client *api.Client
	model  string
}

func newOllamaModel(model, baseURL string) (chatModel, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	httpClient := &http.Client{Transport: transport}

	var client *api.Client
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid ollama base url: %w", companionerrors.ErrGeneratorUnavailable, err)
		}
		client = api.NewClient(u, httpClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("%w: ollama client from environment: %w", companionerrors.ErrGeneratorUnavailable, err)
		}
	}

	return &ollamaModel{client: client, model: model}, nil
}

func (o *ollamaModel) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return o.chat(ctx, []api.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	})
}

func (o *ollamaModel) completeVision(ctx context.Context, systemPrompt, question string, imageBytes []byte, mimeType string) (string, error) {
	return o.chat(ctx, []api.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: question, Images: []api.ImageData{imageBytes}},
	})
}

func (o *ollamaModel) chat(ctx context.Context, messages []api.Message) (string, error) {
	streamVal := false
	req := &api.ChatRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   &streamVal,
	}

	var reply strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return reply.String(), nil
}
