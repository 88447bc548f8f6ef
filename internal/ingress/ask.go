package ingress

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"companion/internal/visualintent"
)

// askRequest is the POST /ask request body (spec §6's general-question API).
type askRequest struct {
	Question      string `json:"question"`
	SendToChannel bool   `json:"send_to_channel"`
}

// askResponse is the POST /ask response body.
type askResponse struct {
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	SentToChannel bool   `json:"sent_to_channel"`
}

func (h *Handler) handleAsk(c *fiber.Ctx) error {
	if !checkAPIKey(c.Get("X-API-Key"), h.deviceKey) {
		return c.Status(fiber.StatusUnauthorized).SendString("invalid api key")
	}

	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("malformed request body")
	}
	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).SendString("question is required")
	}

	if h.gen == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("text generator unavailable")
	}

	wantsVisual := visualintent.WantsVisual(req.Question)
	answer, err := h.gen.GeneralAnswer(c.Context(), req.Question, wantsVisual)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("generation failed")
	}

	sent := false
	if req.SendToChannel && h.gateway != nil && h.sched != nil {
		question, answerCopy := req.Question, answer
		if schedErr := h.sched.Schedule(context.Background(), "ask-channel-post", func(ctx context.Context) error {
			return h.postAskToChannel(ctx, question, answerCopy, wantsVisual)
		}); schedErr == nil {
			sent = true
		} else {
			slog.Warn("failed to schedule ask channel post", "error", schedErr)
		}
	}

	return c.JSON(askResponse{Question: req.Question, Answer: answer, SentToChannel: sent})
}

// postAskToChannel delivers a /ask answer to the configured channel,
// following the same text-then-image ordering as the follow-up/general
// flows in the router.
func (h *Handler) postAskToChannel(ctx context.Context, question, answer string, wantsVisual bool) error {
	textRef, err := h.gateway.SendText(ctx, h.chatID, answer, nil)
	if err != nil {
		return err
	}
	if wantsVisual && h.images != nil {
		img, err := h.images.TryGenerate(ctx, question, answer)
		if err != nil || img == nil {
			return err
		}
		return h.gateway.SendPhoto(ctx, h.chatID, img, diagramCaption, &textRef)
	}
	return nil
}
