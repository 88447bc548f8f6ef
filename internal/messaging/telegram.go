package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	jsoniter "github.com/json-iterator/go"

	"companion/internal/companionerrors"
)

// json mirrors the teacher's package-level jsoniter alias (pkg/llm/llm.go,
// pkg/config/config.go), used here for the one JSON decode this package
// does: parsing an inbound Telegram webhook payload.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// messageLimit is Telegram's per-message character bubble cap, the same
// constant the teacher's TelegramChannel is configured with.
const messageLimit = 4096

// telegramGateway is the production Gateway, grounded on the teacher's
// pkg/channels/telegram/telegram_channel.go: dedicated HTTP client wired to
// a cancellable dial context so long-polling can be aborted cleanly on
// shutdown, and the same chunked-Send strategy for long text.
type telegramGateway struct {
	bot *tgbotapi.BotAPI

	stopCtx    context.Context
	stopCancel context.CancelFunc

	identityOnce sync.Once
	identity     BotIdentity
}

// New builds a Gateway over the Telegram Bot API using the given bot token.
func New(token string) (Gateway, error) {
	stopCtx, cancel := context.WithCancel(context.Background())

	dialer := &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			DialContext: func(dialCtx context.Context, network, addr string) (net.Conn, error) {
				mergedCtx, mergedCancel := context.WithCancel(dialCtx)
				go func() {
					select {
					case <-stopCtx.Done():
						mergedCancel()
					case <-mergedCtx.Done():
					}
				}()
				return dialer.DialContext(mergedCtx, network, addr)
			},
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: time.Second,
		},
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: create telegram bot: %w", companionerrors.ErrMessaging, err)
	}

	return &telegramGateway{bot: bot, stopCtx: stopCtx, stopCancel: cancel}, nil
}

func (g *telegramGateway) SendText(ctx context.Context, chatID, text string, replyTo *MessageRef) (MessageRef, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return MessageRef{}, fmt.Errorf("%w: invalid chat id %q: %w", companionerrors.ErrMessaging, chatID, err)
	}

	chunks := chunkText(text, messageLimit)
	var last tgbotapi.Message
	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(id, chunk)
		if i == 0 && replyTo != nil {
			msg.ReplyToMessageID = replyTo.MessageID
		}
		sent, err := g.bot.Send(msg)
		if err != nil {
			return MessageRef{}, fmt.Errorf("%w: send text chunk %d: %w", companionerrors.ErrMessaging, i, err)
		}
		last = sent
	}
	return MessageRef{ChatID: chatID, MessageID: last.MessageID}, nil
}

func (g *telegramGateway) SendPhoto(ctx context.Context, chatID string, imageBytes []byte, caption string, replyTo *MessageRef) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid chat id %q: %w", companionerrors.ErrMessaging, chatID, err)
	}

	photo := tgbotapi.NewPhoto(id, tgbotapi.FileBytes{Name: "diagram.png", Bytes: imageBytes})
	photo.Caption = caption
	if replyTo != nil {
		photo.ReplyToMessageID = replyTo.MessageID
	}

	if _, err := g.bot.Send(photo); err != nil {
		return fmt.Errorf("%w: send photo: %w", companionerrors.ErrMessaging, err)
	}
	return nil
}

func (g *telegramGateway) Typing(ctx context.Context, chatID string, kind TypingKind) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return
	}
	action := tgbotapi.ChatTyping
	if kind == TypingPhoto {
		action = tgbotapi.ChatUploadPhoto
	}
	if _, err := g.bot.Send(tgbotapi.NewChatAction(id, action)); err != nil {
		slog.Debug("typing indicator failed", "chat_id", chatID, "error", err)
	}
}

func (g *telegramGateway) BotIdentity(ctx context.Context) (BotIdentity, error) {
	g.identityOnce.Do(func() {
		g.identity = BotIdentity{ID: g.bot.Self.ID, Username: g.bot.Self.UserName}
	})
	return g.identity, nil
}

func (g *telegramGateway) AcceptWebhook(ctx context.Context, payload []byte) (*ConversationUpdate, error) {
	var update tgbotapi.Update
	if err := json.Unmarshal(payload, &update); err != nil {
		return nil, fmt.Errorf("%w: decode webhook payload: %w", companionerrors.ErrValidation, err)
	}
	identity, _ := g.BotIdentity(ctx)
	return normalizeUpdate(update, identity)
}

func (g *telegramGateway) RunLongPoll(ctx context.Context, onUpdate func(ConversationUpdate)) {
	identity, err := g.BotIdentity(ctx)
	if err != nil {
		slog.Error("failed to resolve bot identity, aborting long poll", "error", err)
		return
	}

	offset := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-g.stopCtx.Done():
			return
		default:
		}

		req := tgbotapi.NewUpdate(offset)
		req.Timeout = 60

		updates, err := g.bot.GetUpdates(req)
		if err != nil {
			select {
			case <-ctx.Done():
				return
			case <-g.stopCtx.Done():
				return
			default:
				slog.Debug("telegram getUpdates failed", "error", err)
				time.Sleep(3 * time.Second)
				continue
			}
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			normalized, err := normalizeUpdate(u, identity)
			if err != nil || normalized == nil {
				continue
			}
			onUpdate(*normalized)
		}
	}
}

// Stop aborts the long-poll loop's in-flight request, mirroring the
// teacher's TelegramChannel.Stop.
func (g *telegramGateway) Stop() {
	g.stopCancel()
}

func normalizeUpdate(u tgbotapi.Update, identity BotIdentity) (*ConversationUpdate, error) {
	if u.Message == nil || u.Message.Text == "" {
		return nil, nil
	}
	msg := u.Message

	out := &ConversationUpdate{
		ChatID:          strconv.FormatInt(msg.Chat.ID, 10),
		MessageID:       msg.MessageID,
		Text:            msg.Text,
		IsMentionOfSelf: isMentionOfSelf(msg, identity.Username),
	}
	if msg.From != nil {
		out.SenderID = msg.From.ID
		out.SenderIsBot = msg.From.IsBot
	}
	if msg.ReplyToMessage != nil {
		reply := msg.ReplyToMessage
		r := &RepliedMessage{MessageID: reply.MessageID, Text: reply.Text}
		if reply.From != nil {
			r.AuthorID = reply.From.ID
		}
		out.ReplyTo = r
	}
	return out, nil
}
