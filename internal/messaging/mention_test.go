package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestIsMentionOfSelf_LiteralToken(t *testing.T) {
	msg := &tgbotapi.Message{Text: "hey @ReaderBot what does this mean?"}
	assert.True(t, isMentionOfSelf(msg, "ReaderBot"))
}

func TestIsMentionOfSelf_CaseInsensitive(t *testing.T) {
	msg := &tgbotapi.Message{Text: "@readerbot explain this"}
	assert.True(t, isMentionOfSelf(msg, "ReaderBot"))
}

func TestIsMentionOfSelf_NoMention(t *testing.T) {
	msg := &tgbotapi.Message{Text: "just a plain message"}
	assert.False(t, isMentionOfSelf(msg, "ReaderBot"))
}

func TestIsMentionOfSelf_EntityBased(t *testing.T) {
	msg := &tgbotapi.Message{
		Text:     "yo @ReaderBot help",
		Entities: []tgbotapi.MessageEntity{{Type: "mention", Offset: 3, Length: 10}},
	}
	assert.True(t, isMentionOfSelf(msg, "ReaderBot"))
}

func TestStripMentionToken_RemovesTokenAndTrims(t *testing.T) {
	out := StripMentionToken("@ReaderBot what does this mean?", "ReaderBot")
	assert.Equal(t, "what does this mean?", out)
}

func TestStripMentionToken_NoMentionPresent(t *testing.T) {
	out := StripMentionToken("  plain question  ", "ReaderBot")
	assert.Equal(t, "plain question", out)
}
