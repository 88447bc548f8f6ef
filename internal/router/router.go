// Package router implements the companion's conversation router (spec
// component C6): the classification rules that turn an inbound messaging
// update into a general-question or follow-up flow, and the ordering
// guarantee between a turn's text reply and its optional image. No teacher
// file implements this directly — the teacher dispatches every update
// straight into its agent engine without a mention/reply classification
// step — so this package is newly written, composing C2/C3/C4/C5 in the
// shape the teacher's Start loop calls into ctx.OnMessage.
package router

import (
	"context"
	"log/slog"
	"strings"

	"companion/internal/imagepipeline"
	"companion/internal/messaging"
	"companion/internal/textgen"
	"companion/internal/visualintent"
)

const diagramCaption = "🎨 Visual explanation"

// Router owns the C2/C3/C4/C5 collaborators needed to answer mention and
// follow-up turns.
type Router struct {
	gateway  messaging.Gateway
	textgen  textgen.Generator
	images   imagepipeline.Pipeline // nil when image generation is disabled
	chatID   string
	botUser  string
	botID    int64
}

// New builds a Router bound to a single configured chat. images may be nil
// when image generation is not configured (spec §4.8 presence-based
// flags) — the visual branch is then skipped entirely rather than erroring.
// botID is the gateway's own numeric identity, used to tell a reply-to-self
// from a reply to any other message in the watched chat (spec §4.6 rule 4).
func New(gateway messaging.Gateway, gen textgen.Generator, images imagepipeline.Pipeline, chatID, botUsername string, botID int64) *Router {
	return &Router{gateway: gateway, textgen: gen, images: images, chatID: chatID, botUser: botUsername, botID: botID}
}

// OnUpdate classifies and handles a single inbound update per spec §4.6's
// first-match-wins rules.
func (r *Router) OnUpdate(ctx context.Context, update messaging.ConversationUpdate) {
	if update.ChatID != r.chatID {
		return
	}
	if update.SenderIsBot {
		return
	}
	if update.IsMentionOfSelf {
		r.handleGeneralQuestion(ctx, update)
		return
	}
	if update.ReplyTo != nil && update.ReplyTo.AuthorID == r.botID {
		r.handleFollowUp(ctx, update)
		return
	}
	// No rule matched: ignore.
}

func (r *Router) handleGeneralQuestion(ctx context.Context, update messaging.ConversationUpdate) {
	userText := strings.TrimSpace(messaging.StripMentionToken(update.Text, r.botUser))
	if userText == "" {
		return
	}

	r.gateway.Typing(ctx, r.chatID, messaging.TypingText)
	wantsVisual := visualintent.WantsVisual(userText)

	reply, err := r.textgen.GeneralAnswer(ctx, userText, wantsVisual)
	if err != nil {
		slog.Error("general-question flow failed", "error", err)
		return
	}

	textRef, err := r.gateway.SendText(ctx, r.chatID, reply, &messaging.MessageRef{ChatID: r.chatID, MessageID: update.MessageID})
	if err != nil {
		slog.Error("general-question flow failed to send reply", "error", err)
		return
	}

	r.maybeSendImage(ctx, wantsVisual, userText, reply, textRef)
}

func (r *Router) handleFollowUp(ctx context.Context, update messaging.ConversationUpdate) {
	priorText := update.ReplyTo.Text
	question := strings.TrimSpace(update.Text)
	if question == "" {
		return
	}

	r.gateway.Typing(ctx, r.chatID, messaging.TypingText)
	wantsVisual := visualintent.WantsVisual(question)

	reply, err := r.textgen.FollowUp(ctx, question, priorText, wantsVisual)
	if err != nil {
		slog.Error("follow-up flow failed", "error", err)
		return
	}

	textRef, err := r.gateway.SendText(ctx, r.chatID, reply, &messaging.MessageRef{ChatID: r.chatID, MessageID: update.MessageID})
	if err != nil {
		slog.Error("follow-up flow failed to send reply", "error", err)
		return
	}

	r.maybeSendImage(ctx, wantsVisual, question, reply, textRef)
}

// maybeSendImage implements spec §4.6's ordering guarantee: the text
// message is always sent before this is called, and the image — if
// produced — references that text message as its reply target.
func (r *Router) maybeSendImage(ctx context.Context, wantsVisual bool, userContext, priorText string, textRef messaging.MessageRef) {
	if !wantsVisual || r.images == nil {
		return
	}

	r.gateway.Typing(ctx, r.chatID, messaging.TypingPhoto)
	img, err := r.images.TryGenerate(ctx, userContext, priorText)
	if err != nil {
		slog.Warn("image pipeline failed", "error", err)
		return
	}
	if img == nil {
		return
	}

	if err := r.gateway.SendPhoto(ctx, r.chatID, img, diagramCaption, &textRef); err != nil {
		slog.Warn("failed to send generated image", "error", err)
	}
}
