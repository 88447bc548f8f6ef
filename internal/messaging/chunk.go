package messaging

// chunkText splits text into rune-safe pieces no longer than limit runes,
// grounded on the teacher's TelegramChannel.Send chunking loop
// (pkg/channels/telegram/telegram_channel.go), generalized into a pure
// function so it can be tested without a live bot client.
func chunkText(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for i := 0; i < len(runes); i += limit {
		end := i + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
