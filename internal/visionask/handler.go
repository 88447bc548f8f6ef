package visionask

import (
	"context"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"companion/internal/messaging"
	"companion/internal/scheduler"
	"companion/internal/textgen"
	"companion/internal/utils"
)

// Handler wires C7's collaborators: the vision-capable text generator (C2),
// the optional messaging gateway (C5), and the background scheduler (C9).
type Handler struct {
	deviceKey string
	gen       textgen.Generator
	gateway   messaging.Gateway // nil when messaging is disabled
	chatID    string
	sched     *scheduler.Scheduler
}

// New builds a Handler. gateway and sched may be nil; when either is nil,
// send_to_channel requests are accepted but silently not delivered.
func New(deviceKey string, gen textgen.Generator, gateway messaging.Gateway, chatID string, sched *scheduler.Scheduler) *Handler {
	return &Handler{deviceKey: deviceKey, gen: gen, gateway: gateway, chatID: chatID, sched: sched}
}

// Register mounts POST /ask-with-image, following internal/ingress's
// Register(app) convention.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/ask-with-image", h.handleAskWithImage)
}

func (h *Handler) handleAskWithImage(c *fiber.Ctx) error {
	if !checkAPIKey(c.Get("X-API-Key"), h.deviceKey) {
		return c.Status(fiber.StatusUnauthorized).SendString("invalid api key")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("image is required")
	}
	if fileHeader.Size > maxImageBytes {
		return c.Status(fiber.StatusBadRequest).SendString("image exceeds 20 MiB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("could not open uploaded image")
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("could not read uploaded image")
	}
	if len(imageBytes) > maxImageBytes {
		return c.Status(fiber.StatusBadRequest).SendString("image exceeds 20 MiB limit")
	}

	mimeType, _ := utils.DetectMimeAndExt(imageBytes)
	if !utils.IsAllowedImageMIME(mimeType) {
		return c.Status(fiber.StatusBadRequest).SendString("unsupported image type")
	}

	question := c.FormValue("question")
	if question == "" {
		question = defaultQuestion
	}
	sendToChannel := c.FormValue("send_to_channel") == "true"

	if h.gen == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("text generator unavailable")
	}

	answer, err := h.gen.VisionAnswer(c.Context(), imageBytes, mimeType, question)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("vision generation failed")
	}

	sent := false
	if sendToChannel && h.gateway != nil && h.sched != nil {
		questionCopy, answerCopy := question, answer
		if schedErr := h.sched.Schedule(context.Background(), "visionask-channel-post", func(ctx context.Context) error {
			_, err := h.gateway.SendText(ctx, h.chatID, composeChannelPost(questionCopy, answerCopy), nil)
			return err
		}); schedErr == nil {
			sent = true
		} else {
			slog.Warn("failed to schedule vision answer channel post", "error", schedErr)
		}
	}

	return c.JSON(Answer{
		Question:       question,
		AnswerText:     answer,
		ImageFilename:  fileHeader.Filename,
		ImageSizeBytes: int64(len(imageBytes)),
		SentToChannel:  sent,
	})
}

func composeChannelPost(question, answer string) string {
	return "🖼️ " + question + "\n\n" + answer
}
