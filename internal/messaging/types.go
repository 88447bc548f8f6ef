// Package messaging implements the companion's messaging gateway (spec
// component C5): sending text/photos, typing indicators, webhook/long-poll
// update ingestion, and bot self-identity. Grounded on the teacher's
// pkg/channels/telegram/telegram_channel.go, narrowed to the operations C5
// names (no media-group buffering, no streaming accumulation — those serve
// the teacher's chat-agent UI, not this subsystem's turn-based contract).
package messaging

import "context"

// MessageRef identifies a sent message well enough to later target it as a
// reply (spec §4.5's reply_to contract).
type MessageRef struct {
	ChatID    string
	MessageID int
}

// RepliedMessage carries the body and author of the message a
// ConversationUpdate is replying to, when it is one.
type RepliedMessage struct {
	AuthorID  int64
	Text      string
	MessageID int
}

// ConversationUpdate is C5's normalized view of an incoming update, the
// shape C6's classification rules operate over.
type ConversationUpdate struct {
	ChatID          string
	MessageID       int
	SenderID        int64
	SenderIsBot     bool
	Text            string
	IsMentionOfSelf bool
	ReplyTo         *RepliedMessage // nil when the message is not a reply
}

// TypingKind selects the chat action shown while a reply is in flight.
type TypingKind string

const (
	TypingText  TypingKind = "typing"
	TypingPhoto TypingKind = "upload_photo"
)

// BotIdentity is the gateway's own user identity, cached after first call.
type BotIdentity struct {
	ID       int64
	Username string
}

// Gateway is the C5 contract.
type Gateway interface {
	// SendText sends plain text, threading it as a reply when replyTo is
	// non-nil. A failure here aborts the rest of the turn's output per
	// spec §4.5's failure semantics — callers must not attempt SendPhoto
	// after a failed SendText in the same turn.
	SendText(ctx context.Context, chatID, text string, replyTo *MessageRef) (MessageRef, error)

	// SendPhoto sends image bytes with an optional caption, threaded as a
	// reply when replyTo is non-nil. A failure to send a photo does not
	// retry or abort the text that preceded it.
	SendPhoto(ctx context.Context, chatID string, imageBytes []byte, caption string, replyTo *MessageRef) error

	// Typing sets a best-effort typing indicator; failures are ignored.
	Typing(ctx context.Context, chatID string, kind TypingKind)

	// BotIdentity returns the gateway's own identity, cached after the
	// first successful call.
	BotIdentity(ctx context.Context) (BotIdentity, error)

	// AcceptWebhook parses and normalizes an inbound webhook payload,
	// returning nil if the update is not a text message.
	AcceptWebhook(ctx context.Context, payload []byte) (*ConversationUpdate, error)

	// RunLongPoll blocks, delivering updates to onUpdate until ctx is
	// canceled. Webhook-mode deployments never call this.
	RunLongPoll(ctx context.Context, onUpdate func(ConversationUpdate))
}
