package visionask

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companion/internal/messaging"
	"companion/internal/scheduler"
	"companion/internal/textgen"
)

type fakeGenerator struct {
	answer string
	err    error
}

func (f *fakeGenerator) ShortExplain(ctx context.Context, text string, rc textgen.RequestContext) (string, error) {
	return "", nil
}
func (f *fakeGenerator) LongExplain(ctx context.Context, text string, rc textgen.RequestContext) (string, error) {
	return "", nil
}
func (f *fakeGenerator) FollowUp(ctx context.Context, question, prior string, wantsVisual bool) (string, error) {
	return "", nil
}
func (f *fakeGenerator) GeneralAnswer(ctx context.Context, question string, wantsVisual bool) (string, error) {
	return "", nil
}
func (f *fakeGenerator) VisionAnswer(ctx context.Context, imageBytes []byte, mimeType, question string) (string, error) {
	return f.answer, f.err
}

type fakeGateway struct {
	sentTexts []string
}

func (f *fakeGateway) SendText(ctx context.Context, chatID, text string, replyTo *messaging.MessageRef) (messaging.MessageRef, error) {
	f.sentTexts = append(f.sentTexts, text)
	return messaging.MessageRef{ChatID: chatID, MessageID: len(f.sentTexts)}, nil
}
func (f *fakeGateway) SendPhoto(ctx context.Context, chatID string, imageBytes []byte, caption string, replyTo *messaging.MessageRef) error {
	return nil
}
func (f *fakeGateway) Typing(ctx context.Context, chatID string, kind messaging.TypingKind) {}
func (f *fakeGateway) BotIdentity(ctx context.Context) (messaging.BotIdentity, error) {
	return messaging.BotIdentity{}, nil
}
func (f *fakeGateway) AcceptWebhook(ctx context.Context, payload []byte) (*messaging.ConversationUpdate, error) {
	return nil, nil
}
func (f *fakeGateway) RunLongPoll(ctx context.Context, onUpdate func(messaging.ConversationUpdate)) {}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newMultipartBody(t *testing.T, fields map[string]string, imageData []byte, omitImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if !omitImage {
		part, err := writer.CreateFormFile("image", "test.png")
		require.NoError(t, err)
		_, err = part.Write(imageData)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func newTestApp(h *Handler) *fiber.App {
	app := fiber.New()
	h.Register(app)
	return app
}

func TestHandleAskWithImage_RejectsBadAPIKey(t *testing.T) {
	h := New("correct-key", &fakeGenerator{answer: "a cat"}, nil, "1", nil)
	app := newTestApp(h)

	body, contentType := newMultipartBody(t, map[string]string{"question": "what is this?"}, pngBytes(t), false)
	req := httptest.NewRequest("POST", "/ask-with-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-API-Key", "wrong-key")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleAskWithImage_RejectsMissingImage(t *testing.T) {
	h := New("correct-key", &fakeGenerator{answer: "a cat"}, nil, "1", nil)
	app := newTestApp(h)

	body, contentType := newMultipartBody(t, map[string]string{"question": "what is this?"}, nil, true)
	req := httptest.NewRequest("POST", "/ask-with-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-API-Key", "correct-key")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleAskWithImage_RejectsDisallowedMIME(t *testing.T) {
	h := New("correct-key", &fakeGenerator{answer: "a cat"}, nil, "1", nil)
	app := newTestApp(h)

	body, contentType := newMultipartBody(t, map[string]string{"question": "what is this?"}, []byte("not an image, just text bytes"), false)
	req := httptest.NewRequest("POST", "/ask-with-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-API-Key", "correct-key")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleAskWithImage_ReturnsAnswerUsingDefaultQuestion(t *testing.T) {
	h := New("correct-key", &fakeGenerator{answer: "a small orange cat"}, nil, "1", nil)
	app := newTestApp(h)

	body, contentType := newMultipartBody(t, map[string]string{}, pngBytes(t), false)
	req := httptest.NewRequest("POST", "/ask-with-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-API-Key", "correct-key")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, defaultQuestion, out.Question)
	assert.Equal(t, "a small orange cat", out.AnswerText)
	assert.Equal(t, "test.png", out.ImageFilename)
	assert.Equal(t, int64(len(pngBytes(t))), out.ImageSizeBytes)
	assert.False(t, out.SentToChannel)
}

func TestHandleAskWithImage_SendsToChannelWhenRequested(t *testing.T) {
	gw := &fakeGateway{}
	sched := scheduler.New(4, 2*time.Second, 2*time.Second)
	h := New("correct-key", &fakeGenerator{answer: "a small orange cat"}, gw, "1", sched)
	app := newTestApp(h)

	body, contentType := newMultipartBody(t, map[string]string{"question": "what animal is this?", "send_to_channel": "true"}, pngBytes(t), false)
	req := httptest.NewRequest("POST", "/ask-with-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-API-Key", "correct-key")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.SentToChannel)

	sched.Drain()
	require.Len(t, gw.sentTexts, 1)
	assert.Contains(t, gw.sentTexts[0], "a small orange cat")
}

func TestHandleAskWithImage_FallsBackToServiceUnavailableOnGenerationError(t *testing.T) {
	h := New("correct-key", &fakeGenerator{err: assertErr("boom")}, nil, "1", nil)
	app := newTestApp(h)

	body, contentType := newMultipartBody(t, map[string]string{}, pngBytes(t), false)
	req := httptest.NewRequest("POST", "/ask-with-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-API-Key", "correct-key")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
