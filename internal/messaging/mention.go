package messaging

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// isMentionOfSelf implements spec §4.6's mention detection: a text entity
// of type "mention" naming the bot, or a literal "@<username>" token
// compared case-insensitively, since Telegram's entity offsets aren't
// always populated for bots added after the message was composed.
func isMentionOfSelf(msg *tgbotapi.Message, botUsername string) bool {
	if msg == nil || botUsername == "" {
		return false
	}
	for _, ent := range msg.Entities {
		if ent.Type != "mention" {
			continue
		}
		if ent.Offset < 0 || ent.Offset+ent.Length > len([]rune(msg.Text)) {
			continue
		}
		token := string([]rune(msg.Text)[ent.Offset : ent.Offset+ent.Length])
		if strings.EqualFold(strings.TrimPrefix(token, "@"), botUsername) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(msg.Text), "@"+strings.ToLower(botUsername))
}

// StripMentionToken removes a literal "@<username>" token from text
// (case-insensitive) and trims the result, per the general-question flow's
// "strip the mention token from text; trim" step.
func StripMentionToken(text, botUsername string) string {
	if botUsername == "" {
		return strings.TrimSpace(text)
	}
	lowerText := strings.ToLower(text)
	token := "@" + strings.ToLower(botUsername)
	idx := strings.Index(lowerText, token)
	if idx < 0 {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[:idx] + text[idx+len(token):])
}
