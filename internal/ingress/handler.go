package ingress

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"companion/internal/companionerrors"
	"companion/internal/imagepipeline"
	"companion/internal/messaging"
	"companion/internal/scheduler"
	"companion/internal/textgen"
)

const diagramCaption = "🎨 Visual explanation"

// Handler wires C1's collaborators: the text generator (C2), the optional
// image pipeline (C4), the optional messaging gateway (C5), and the
// background scheduler (C9).
type Handler struct {
	deviceKey string
	gen       textgen.Generator
	images    imagepipeline.Pipeline // nil when image generation is disabled
	gateway   messaging.Gateway      // nil when messaging is disabled
	chatID    string
	sched     *scheduler.Scheduler
}

// New builds a Handler. gateway and images may be nil per spec §4.8's
// presence-based feature flags; a nil gateway disables background
// enrichment entirely (enrich returns at once without calling C2).
func New(deviceKey string, gen textgen.Generator, images imagepipeline.Pipeline, gateway messaging.Gateway, chatID string, sched *scheduler.Scheduler) *Handler {
	return &Handler{deviceKey: deviceKey, gen: gen, images: images, gateway: gateway, chatID: chatID, sched: sched}
}

// Register mounts POST /kobo-ask on app, grounded on kevingil-blog's
// per-feature Register(app) blueprint-registration pattern (the pack's
// only Fiber user) since the teacher itself has no HTTP ingress.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/kobo-ask", h.handleKoboAsk)
	app.Post("/ask", h.handleAsk)
}

func (h *Handler) handleKoboAsk(c *fiber.Ctx) error {
	if !checkAPIKey(c.Get("X-API-Key"), h.deviceKey) {
		return c.Status(fiber.StatusUnauthorized).SendString("invalid api key")
	}

	var req HighlightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("malformed request body")
	}
	if err := validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if h.gen == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("text generator unavailable")
	}

	short, err := h.gen.ShortExplain(c.Context(), req.Text, textgen.RequestContext{
		Book: req.Context.Book, Author: req.Context.Author, Chapter: req.Context.Chapter,
	})
	reply := fallbackReply
	if err != nil {
		slog.Error("short-form generation failed, returning fallback", "error", err)
	} else {
		reply = sanitizeDeviceReply(short)
	}

	if h.sched != nil {
		reqCopy := req
		if schedErr := h.sched.Schedule(context.Background(), "enrich", func(ctx context.Context) error {
			return h.enrich(ctx, reqCopy)
		}); schedErr != nil && !errors.Is(schedErr, companionerrors.ErrSchedulerFull) {
			slog.Error("failed to schedule enrichment", "error", schedErr)
		}
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(reply)
}

// enrich is the background task C9 runs per spec §4.9: a highlight card,
// the long explanation threaded beneath it, and (if configured) a diagram
// image threaded beneath that. Any step's failure aborts the remaining
// steps for this turn without raising to the caller.
func (h *Handler) enrich(ctx context.Context, req HighlightRequest) error {
	if h.gateway == nil {
		return nil
	}

	start := time.Now()
	cardRef, err := h.gateway.SendText(ctx, h.chatID, composeHighlightCard(req), nil)
	if err != nil {
		return err
	}

	long, err := h.gen.LongExplain(ctx, req.Text, textgen.RequestContext{
		Book: req.Context.Book, Author: req.Context.Author, Chapter: req.Context.Chapter,
	})
	if err != nil {
		return err
	}

	textRef, err := h.gateway.SendText(ctx, h.chatID, long, &cardRef)
	if err != nil {
		return err
	}

	if h.images != nil {
		img, err := h.images.TryGenerate(ctx, req.Text, long)
		if err != nil {
			slog.Warn("enrichment image pipeline failed", "error", err)
		} else if img != nil {
			if err := h.gateway.SendPhoto(ctx, h.chatID, img, diagramCaption, &textRef); err != nil {
				slog.Warn("enrichment failed to send image", "error", err)
			}
		}
	}

	slog.Info("enrichment turn completed", "duration", time.Since(start).String())
	return nil
}
