package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"companion/internal/config"
	"companion/internal/imagepipeline"
	"companion/internal/ingress"
	"companion/internal/messaging"
	"companion/internal/monitor"
	"companion/internal/router"
	"companion/internal/scheduler"
	"companion/internal/textgen"
	"companion/internal/visionask"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err == nil {
		monitor.Setup(cfg.LogLevel)
	} else {
		monitor.Setup("info")
	}

	reloadCh := config.WatchEnvFile(ctx, ".env")

	for {
		err := runCompanion(ctx, reloadCh)
		if err != nil {
			slog.Error("companion crashed or failed to start", "error", err)
			slog.Info("waiting 5 seconds before retrying")
			select {
			case <-ctx.Done():
				return
			case <-reloadCh:
				slog.Info("configuration change detected while waiting, retrying immediately")
			case <-time.After(5 * time.Second):
			}
		} else {
			select {
			case <-ctx.Done():
				return
			default:
				slog.Info("configuration reloaded, restarting")
			}
		}
	}
}

// runCompanion executes a single lifecycle of the companion: load
// configuration, build every component, serve HTTP until a shutdown or
// reload signal arrives, and drain in-flight background work before
// returning. Grounded on the teacher's main.go runAgent lifecycle function
// (load → build → serve-until-signal → drain), narrowed from its
// channel-gateway abstraction to a single Fiber app.
func runCompanion(ctx context.Context, reloadCh <-chan struct{}) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	monitor.Setup(cfg.LogLevel)
	slog.Info("==========================================")

	sched := scheduler.New(cfg.Scheduler.MaxConcurrent, cfg.Scheduler.TaskTimeout, cfg.Scheduler.DrainTimeout)

	gen, err := textgen.NewFromConfig(ctx, cfg.Text)
	if err != nil {
		return fmt.Errorf("failed to init text generator: %w", err)
	}

	images, err := imagepipeline.New(ctx, cfg.Image, cfg.Text, cfg.Renderer)
	if err != nil {
		return fmt.Errorf("failed to init image pipeline: %w", err)
	}

	var gateway messaging.Gateway
	var botUsername string
	var botID int64
	if cfg.MessagingEnabled() {
		gateway, err = messaging.New(cfg.Messaging.BotToken.Reveal())
		if err != nil {
			return fmt.Errorf("failed to init messaging gateway: %w", err)
		}
		identity, err := gateway.BotIdentity(ctx)
		if err != nil {
			slog.Warn("failed to resolve bot identity, mention/reply-to-self detection will rely on literal @username only", "error", err)
		} else {
			botUsername = identity.Username
			botID = identity.ID
		}
	}

	conversationRouter := router.New(gateway, gen, images, cfg.Messaging.ChatID, botUsername, botID)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	koboHandler := ingress.New(cfg.Device.APIKey.Reveal(), gen, images, gateway, cfg.Messaging.ChatID, sched)
	koboHandler.Register(app)

	visionHandler := visionask.New(cfg.Device.APIKey.Reveal(), gen, gateway, cfg.Messaging.ChatID, sched)
	visionHandler.Register(app)

	var longPollCancel context.CancelFunc
	if cfg.MessagingEnabled() {
		if cfg.Messaging.WebhookURL != "" {
			app.Post("/telegram-webhook", newWebhookHandler(gateway, conversationRouter))
		} else {
			pollCtx, cancel := context.WithCancel(ctx)
			longPollCancel = cancel
			go gateway.RunLongPoll(pollCtx, func(update messaging.ConversationUpdate) {
				conversationRouter.OnUpdate(pollCtx, update)
			})
		}
	}

	listenErrCh := make(chan error, 1)
	go func() {
		listenErrCh <- app.Listen(":8080")
	}()

	select {
	case <-ctx.Done():
		slog.Info("received shutdown signal, stopping services")
	case <-reloadCh:
		slog.Info("configuration change detected, stopping services")
	case err := <-listenErrCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	}

	if longPollCancel != nil {
		longPollCancel()
	}
	_ = app.ShutdownWithTimeout(10 * time.Second)
	sched.Drain()
	slog.Info("companion stopped cleanly")
	return nil
}

// newWebhookHandler adapts an inbound Telegram webhook POST into C5's
// normalized update shape and dispatches it through C6's router, matching
// spec.md §6's "POST /telegram-webhook" contract: the payload is decoded by
// the gateway itself (it alone knows the wire format), and any shape the
// gateway does not recognize as a text update is acknowledged with 200 and
// silently dropped rather than surfaced as an error to Telegram's retry
// logic.
func newWebhookHandler(gateway messaging.Gateway, r *router.Router) fiber.Handler {
	return func(c *fiber.Ctx) error {
		update, err := gateway.AcceptWebhook(c.Context(), c.Body())
		if err != nil {
			slog.Warn("failed to parse telegram webhook payload", "error", err)
			return c.SendStatus(fiber.StatusOK)
		}
		if update != nil {
			r.OnUpdate(c.Context(), *update)
		}
		return c.SendStatus(fiber.StatusOK)
	}
}
