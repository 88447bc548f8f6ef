// Package config loads and validates the companion's runtime configuration.
// Configuration is presence-based: optional collaborators (image model,
// diagram renderer, messaging) are simply absent from Config when their
// environment keys are unset, and components receive the zero value and
// short-circuit rather than branching on a sprawl of feature-enabled flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DeviceConfig holds the credentials the Kobo device ingress authenticates
// against.
type DeviceConfig struct {
	APIKey Secret
}

// MessagingConfig holds the Telegram bot credentials and routing target.
// Messaging is enabled iff BotToken, ChatID, and WebhookURL (or long-poll
// mode) are all present.
type MessagingConfig struct {
	BotToken   Secret
	ChatID     string
	WebhookURL string
}

// AITextConfig selects and authenticates the text-generation provider.
type AITextConfig struct {
	Provider string // "gemini", "openai", or "ollama"
	APIKey   Secret
	Model    string
	BaseURL  string // only meaningful for ollama
}

// AIImageConfig configures the optional image-generation model (Strategy A).
// ImageModelID empty disables Strategy A entirely.
type AIImageConfig struct {
	ImageModelID string
}

// DiagramRendererConfig configures the optional external renderer
// (Strategy B). BaseURL empty disables Strategy B entirely.
type DiagramRendererConfig struct {
	BaseURL string
}

// SchedulerConfig carries the background task scheduler's tunables.
type SchedulerConfig struct {
	MaxConcurrent   int
	TaskTimeout     time.Duration
	DrainTimeout    time.Duration
	SyncReplyBudget time.Duration
	SyncReplyHardMax time.Duration
}

// Config is the immutable, validated, process-wide configuration object.
// It is constructed once at startup and never mutated; a config reload
// produces a brand-new *Config rather than patching the existing one, so
// components that captured a *Config pointer never observe a half-updated
// state.
type Config struct {
	Device           DeviceConfig
	Messaging        MessagingConfig
	Text             AITextConfig
	Image            AIImageConfig
	Renderer         DiagramRendererConfig
	Scheduler        SchedulerConfig
	LogLevel         string
	DebugCaptureChunks bool
}

// ImageGenEnabled reports whether Strategy A (direct image model) is
// configured, per the presence-based feature switch rule.
func (c *Config) ImageGenEnabled() bool {
	return c.Image.ImageModelID != ""
}

// RendererEnabled reports whether Strategy B (diagram code + renderer) is
// configured.
func (c *Config) RendererEnabled() bool {
	return c.Renderer.BaseURL != ""
}

// MessagingEnabled reports whether the messaging gateway has everything it
// needs to operate (bot token + chat id; a webhook URL additionally enables
// webhook mode instead of long polling).
func (c *Config) MessagingEnabled() bool {
	return !c.Messaging.BotToken.Empty() && c.Messaging.ChatID != ""
}

// Load reads a .env file (if present) into the process environment, then
// parses and validates Config from environment variables. A missing .env
// file is not an error — the companion may run with variables already
// exported by its host environment (container, systemd unit, etc.), the
// same graceful-fallback behavior the teacher's godotenv-adjacent configs
// rely on.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Device: DeviceConfig{
			APIKey: Secret(os.Getenv("KOBO_API_KEY")),
		},
		Messaging: MessagingConfig{
			BotToken:   Secret(os.Getenv("MESSAGING_BOT_TOKEN")),
			ChatID:     os.Getenv("MESSAGING_CHAT_ID"),
			WebhookURL: os.Getenv("MESSAGING_WEBHOOK_URL"),
		},
		Text: AITextConfig{
			Provider: envOr("TEXT_MODEL_PROVIDER", "gemini"),
			APIKey:   Secret(os.Getenv("TEXT_MODEL_API_KEY")),
			Model:    os.Getenv("TEXT_MODEL_ID"),
			BaseURL:  envOr("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Image: AIImageConfig{
			ImageModelID: os.Getenv("IMAGE_MODEL_ID"),
		},
		Renderer: DiagramRendererConfig{
			BaseURL: os.Getenv("DIAGRAM_RENDERER_BASE_URL"),
		},
		Scheduler: SchedulerConfig{
			MaxConcurrent:    envOrInt("SCHEDULER_MAX_CONCURRENT", 16),
			TaskTimeout:      envOrDuration("SCHEDULER_TASK_TIMEOUT_MS", 60_000),
			DrainTimeout:     envOrDuration("SCHEDULER_DRAIN_TIMEOUT_MS", 10_000),
			SyncReplyBudget:  envOrDuration("INGRESS_SOFT_BUDGET_MS", 5_000),
			SyncReplyHardMax: envOrDuration("INGRESS_HARD_DEADLINE_MS", 25_000),
		},
		LogLevel:           envOr("LOG_LEVEL", "info"),
		DebugCaptureChunks: os.Getenv("DEBUG_CAPTURE_CHUNKS") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the mandatory-key and bound checks the companion
// requires at startup. Missing device keys or out-of-bound numeric
// settings fail fast rather than producing a subsystem that silently
// misbehaves at request time.
func (c *Config) Validate() error {
	if c.Device.APIKey.Empty() {
		return fmt.Errorf("config: KOBO_API_KEY is required")
	}
	if c.Text.APIKey.Empty() && c.Text.Provider != "ollama" {
		return fmt.Errorf("config: TEXT_MODEL_API_KEY is required for provider %q", c.Text.Provider)
	}
	if c.Text.Model == "" {
		return fmt.Errorf("config: TEXT_MODEL_ID is required")
	}
	if c.Scheduler.MaxConcurrent < 1 {
		return fmt.Errorf("config: SCHEDULER_MAX_CONCURRENT must be >= 1, got %d", c.Scheduler.MaxConcurrent)
	}
	if c.MessagingEnabled() {
		// A messaging deployment needs either a webhook URL (push mode) or
		// will fall back to long polling; both are valid, so there is no
		// additional required key here beyond bot token + chat id.
		_ = c.Messaging.WebhookURL
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envOrDuration(key string, defMs int) time.Duration {
	ms := envOrInt(key, defMs)
	return time.Duration(ms) * time.Millisecond
}
