package ingress

import (
	"strings"
	"unicode"
)

// deviceReplyMaxRunes is the device dialog's hard character cap (spec §4.1
// step 4).
const deviceReplyMaxRunes = 200

// asciiFolds maps common non-ASCII punctuation a model tends to emit to its
// plain-ASCII equivalent, applied before the hard non-ASCII strip below so
// an em-dash or curly quote degrades to "-"/"'" instead of vanishing.
var asciiFolds = strings.NewReplacer(
	"—", "-", "–", "-", // em dash, en dash
	"‘", "'", "’", "'", // curly single quotes
	"“", "\"", "”", "\"", // curly double quotes
	"…", "...", // ellipsis
)

// sanitizeDeviceReply trims and normalizes whitespace, strips embedded
// control characters, folds common non-ASCII punctuation to its ASCII
// equivalent and drops any remaining non-ASCII rune, and hard-truncates at
// the last word boundary at or before deviceReplyMaxRunes, per spec §4.1
// step 4 and spec §8's "it is valid ASCII" invariant on every accepted
// /kobo-ask response. This runs on the generator's already-sanitized
// output as the device-boundary backstop — C2's own sanitizeShort strips
// markdown and truncates but leaves non-ASCII runes in place, so this one
// is the code-level ASCII enforcement for a 40-column device dialog.
func sanitizeDeviceReply(text string) string {
	text = asciiFolds.Replace(text)

	var b strings.Builder
	lastWasSpace := false
	for _, r := range text {
		if r > unicode.MaxASCII {
			continue
		}
		if unicode.IsSpace(r) {
			if lastWasSpace {
				continue
			}
			lastWasSpace = true
			b.WriteRune(' ')
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		lastWasSpace = false
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())

	runes := []rune(out)
	if len(runes) <= deviceReplyMaxRunes {
		return out
	}
	truncated := runes[:deviceReplyMaxRunes]
	if runes[deviceReplyMaxRunes] != ' ' {
		if idx := strings.LastIndex(string(truncated), " "); idx > 0 {
			truncated = []rune(string(truncated)[:idx])
		}
	}
	return strings.TrimSpace(string(truncated))
}
